package service

import (
	enrollModel "lms_backend/internals/features/academics/enrollments/model"
)

/* =========================
   Konversi skala 10 → skala 4
   ========================= */

type gradeBucket struct {
	Min    float64
	Score4 float64
	Letter string
}

// Tabel quy đổi, terurut menurun; bucket = [Min, batas bawah bucket di
// atasnya), jadi partisi [0,10] rapat tanpa celah (8.49 → B+, bukan
// jatuh ke default seperti tabel lama yang berlubang di 8.4–8.5).
var gradeConversion = []gradeBucket{
	{8.5, 4.0, "A"},
	{8.0, 3.5, "B+"},
	{7.0, 3.0, "B"},
	{6.5, 2.5, "C+"},
	{5.5, 2.0, "C"},
	{5.0, 1.5, "D+"},
	{4.0, 1.0, "D"},
	{0.0, 0.0, "F"},
}

// ConvertScore mengubah nilai skala 10 menjadi (skala 4, huruf).
// Nilai di luar [0,10] (termasuk negatif) tidak cocok bucket manapun dan
// jatuh ke default (0, "F") — jangan diganti jadi penolakan input.
func ConvertScore(score10 float64) (float64, string) {
	if score10 < 0 || score10 > 10 {
		return 0.0, "F"
	}
	for _, b := range gradeConversion {
		if score10 >= b.Min {
			return b.Score4, b.Letter
		}
	}
	return 0.0, "F"
}

/* =========================
   Pemilihan nilai akhir
   ========================= */

// ScoreSelector menentukan satu nilai skala-10 representatif dari daftar
// grade sebuah enrollment. Return kedua false artinya "belum ada nilai"
// (enrollment dilewati, bukan dihitung gagal).
type ScoreSelector func(grades []enrollModel.Grade) (float64, bool)

// SelectFinalFirst: kebijakan aktif. Pakai entri bertipe "final" kalau
// ada; kalau tidak, entri pertama sesuai urutan insert. Weight sengaja
// tidak dipakai di sini (lihat SelectWeightedComposite untuk alternatif
// komposit yang didukung skema).
func SelectFinalFirst(grades []enrollModel.Grade) (float64, bool) {
	if len(grades) == 0 {
		return 0, false
	}
	for _, g := range grades {
		if g.GradeType == enrollModel.GradeTypeFinal {
			return g.Score, true
		}
	}
	return grades[0].Score, true
}

// SelectWeightedComposite: alternatif komposit Σ(score×weight)/Σ(weight).
// Grade dengan weight 0 diabaikan; kalau total weight 0, fallback ke
// SelectFinalFirst supaya data lama tanpa weight tetap terbaca.
func SelectWeightedComposite(grades []enrollModel.Grade) (float64, bool) {
	if len(grades) == 0 {
		return 0, false
	}
	var sum, weight float64
	for _, g := range grades {
		if g.Weight <= 0 {
			continue
		}
		sum += g.Score * g.Weight
		weight += g.Weight
	}
	if weight == 0 {
		return SelectFinalFirst(grades)
	}
	return sum / weight, true
}
