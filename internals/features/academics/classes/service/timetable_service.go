package service

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	m "lms_backend/internals/features/academics/classes/model"
	enrollModel "lms_backend/internals/features/academics/enrollments/model"
	semesterModel "lms_backend/internals/features/academics/semesters/model"
)

/* =========================
   Service & Constructor
   ========================= */

// TimetableService mematerialisasi pola mingguan Class menjadi baris
// Timetable bertanggal, dan memakai hasilnya untuk deteksi bentrok jadwal.
type TimetableService struct {
	DB *gorm.DB
}

func NewTimetableService(db *gorm.DB) *TimetableService {
	return &TimetableService{DB: db}
}

// recurrence adalah satu pola mingguan yang dimaterialisasi.
type recurrence struct {
	DayOfWeek   int // 2=Mon .. 8=Sun
	StartPeriod int
	EndPeriod   int
	Room        string
}

// mondayOfWeek menggeser tanggal ke hari Senin pada minggu yang sama.
func mondayOfWeek(d time.Time) time.Time {
	// time.Weekday: Minggu=0; kita butuh offset dari Senin.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// lessonDates menghitung tanggal pertemuan untuk satu recurrence di
// rentang minggu [startWeek, endWeek] relatif terhadap awal semester.
// dayOfWeek memakai konvensi 2=Senin .. 8=Minggu.
func lessonDates(semesterStart time.Time, dayOfWeek, startWeek, endWeek int) []time.Time {
	alignedStart := mondayOfWeek(semesterStart)
	targetOffset := dayOfWeek - 2

	var dates []time.Time
	for week := startWeek; week <= endWeek; week++ {
		weekMonday := alignedStart.AddDate(0, 0, (week-1)*7)
		dates = append(dates, weekMonday.AddDate(0, 0, targetOffset))
	}
	return dates
}

// recurrences menentukan pola yang dipakai: sub-jadwal Schedule kalau ada
// (periode masih placeholder [1,3]), kalau tidak fallback ke field pola di
// Class sendiri.
func recurrences(class *m.Class) []recurrence {
	var out []recurrence

	for _, s := range class.Schedules {
		if s.DayOfWeek == nil {
			continue
		}
		dow, err := strconv.Atoi(strings.TrimSpace(*s.DayOfWeek))
		if err != nil || dow == 0 {
			continue
		}
		room := ""
		if s.Room != nil {
			room = *s.Room
		}
		out = append(out, recurrence{
			DayOfWeek: dow,
			// TODO: turunkan periode dari start_time/end_time milik
			// Schedule; sumber data lama belum menyimpan mapping jam →
			// periode sehingga masih dipatok [1,3].
			StartPeriod: 1,
			EndPeriod:   3,
			Room:        room,
		})
	}

	if len(out) == 0 && class.DayOfWeek != nil {
		room := "Unknown"
		if class.Room != nil && *class.Room != "" {
			room = *class.Room
		}
		r := recurrence{DayOfWeek: *class.DayOfWeek, Room: room}
		if class.StartPeriod != nil {
			r.StartPeriod = *class.StartPeriod
		}
		if class.EndPeriod != nil {
			r.EndPeriod = *class.EndPeriod
		}
		out = append(out, r)
	}
	return out
}

/* =========================
   Materialisasi
   ========================= */

// Generate me-regenerate penuh Timetable milik satu class: hapus semua
// baris lama lalu insert set baru, dalam satu transaksi. Class atau
// semester yang tidak ketemu → no-op (kontrak lama dipertahankan;
// validasi referensi code semester dilakukan di jalur tulis Class).
func (s *TimetableService) Generate(classID int) error {
	var class m.Class
	if err := s.DB.Preload("Schedules").First(&class, classID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if strings.TrimSpace(class.Semester) == "" {
		return nil
	}

	var semester semesterModel.Semester
	if err := s.DB.Where("code = ?", class.Semester).First(&semester).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	startWeek := m.DefaultStartWeek
	if class.StartWeek != nil && *class.StartWeek > 0 {
		startWeek = *class.StartWeek
	}
	endWeek := m.DefaultEndWeek
	if class.EndWeek != nil && *class.EndWeek > 0 {
		endWeek = *class.EndWeek
	}

	var rows []m.Timetable
	for _, rec := range recurrences(&class) {
		for _, date := range lessonDates(semester.StartDate, rec.DayOfWeek, startWeek, endWeek) {
			rows = append(rows, m.Timetable{
				ClassID:     classID,
				Date:        date,
				StartPeriod: rec.StartPeriod,
				EndPeriod:   rec.EndPeriod,
				Room:        rec.Room,
			})
		}
	}

	// delete + insert harus atomik supaya tidak ada timetable setengah jadi
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", classID).Delete(&m.Timetable{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

/* =========================
   Deteksi bentrok
   ========================= */

// periodsOverlap: interval periode tertutup; [1,3] vs [2,4] bentrok,
// [1,2] vs [3,4] tidak.
func periodsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return max(aStart, bStart) <= min(aEnd, bEnd)
}

// HasConflict memeriksa apakah timetable kelas kandidat beririsan dengan
// timetable kelas-kelas yang sudah diambil student. Timetable kandidat
// di-regenerate dulu supaya pasti mutakhir. True pada bentrok pertama.
func (s *TimetableService) HasConflict(studentID, classID int) (bool, error) {
	if err := s.Generate(classID); err != nil {
		return false, err
	}

	var candidate []m.Timetable
	if err := s.DB.Where("class_id = ?", classID).Find(&candidate).Error; err != nil {
		return false, err
	}
	if len(candidate) == 0 {
		return false, nil
	}

	var existingClassIDs []int
	if err := s.DB.Model(&enrollModel.Enrollment{}).
		Where("student_id = ?", studentID).
		Pluck("class_id", &existingClassIDs).Error; err != nil {
		return false, err
	}
	if len(existingClassIDs) == 0 {
		return false, nil
	}

	var existing []m.Timetable
	if err := s.DB.Where("class_id IN ?", existingClassIDs).Find(&existing).Error; err != nil {
		return false, err
	}

	for _, cand := range candidate {
		for _, ex := range existing {
			if !cand.Date.Equal(ex.Date) {
				continue
			}
			if periodsOverlap(cand.StartPeriod, cand.EndPeriod, ex.StartPeriod, ex.EndPeriod) {
				return true, nil
			}
		}
	}
	return false, nil
}
