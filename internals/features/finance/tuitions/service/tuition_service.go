package service

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollModel "lms_backend/internals/features/academics/enrollments/model"
	m "lms_backend/internals/features/finance/tuitions/model"
)

// sweepBatchSize membatasi kerja per transaksi saat sweep ganti harga.
const sweepBatchSize = 200

/* =========================
   Service & Constructor
   ========================= */

// TuitionService menurunkan baris Tuition dari kredit terdaftar × harga
// per SKS. Harga selalu dibaca eksplisit dari tabel settings, bukan
// variabel global proses.
type TuitionService struct {
	DB *gorm.DB
}

func NewTuitionService(db *gorm.DB) *TuitionService {
	return &TuitionService{DB: db}
}

// CurrentPrice membaca harga per SKS dari settings; fallback ke default
// kalau belum pernah diset atau nilainya korup.
func (s *TuitionService) CurrentPrice() (int64, error) {
	var setting m.Setting
	err := s.DB.Where("key = ?", m.SettingTuitionPricePerCredit).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return m.DefaultPricePerCredit, nil
	}
	if err != nil {
		return 0, err
	}
	price, convErr := strconv.ParseInt(setting.Value, 10, 64)
	if convErr != nil {
		return m.DefaultPricePerCredit, nil
	}
	return price, nil
}

// registeredCredits menjumlahkan sks semua kelas yang diambil student
// pada satu semester.
func (s *TuitionService) registeredCredits(tx *gorm.DB, studentID int, semester string) (int64, error) {
	var credits *int64
	err := tx.Model(&enrollModel.Enrollment{}).
		Joins("JOIN classes ON classes.id = enrollments.class_id").
		Joins("JOIN courses ON courses.id = classes.course_id").
		Where("enrollments.student_id = ? AND classes.semester = ?", studentID, semester).
		Select("SUM(courses.credits)").
		Scan(&credits).Error
	if err != nil {
		return 0, err
	}
	if credits == nil {
		return 0, nil
	}
	return *credits, nil
}

/* =========================
   Recompute per (student, semester)
   ========================= */

// Recalculate meng-upsert Tuition (student, semester):
// total = sks terdaftar × harga sekarang; status diturunkan ulang;
// paid_amount tidak pernah disentuh recompute.
func (s *TuitionService) Recalculate(studentID int, semester string) (*m.Tuition, error) {
	price, err := s.CurrentPrice()
	if err != nil {
		return nil, err
	}
	return s.recalculateAt(s.DB, studentID, semester, price)
}

func (s *TuitionService) recalculateAt(tx *gorm.DB, studentID int, semester string, price int64) (*m.Tuition, error) {
	credits, err := s.registeredCredits(tx, studentID, semester)
	if err != nil {
		return nil, err
	}
	total := credits * price

	var tuition m.Tuition
	err = tx.Where("student_id = ? AND semester = ?", studentID, semester).
		First(&tuition).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		tuition = m.Tuition{
			StudentID:   studentID,
			Semester:    semester,
			TotalAmount: total,
			PaidAmount:  0,
			Status:      m.DeriveStatus(total, 0),
		}
		if err := tx.Create(&tuition).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		tuition.TotalAmount = total
		tuition.Status = m.DeriveStatus(total, tuition.PaidAmount)
		if err := tx.Save(&tuition).Error; err != nil {
			return nil, err
		}
	}
	return &tuition, nil
}

/* =========================
   Ganti harga + sweep
   ========================= */

// SetPricePerCredit menyimpan harga baru lalu menyapu SEMUA baris Tuition:
// total_amount dihitung ulang dari sks semester masing-masing pada harga
// baru, status diturunkan ulang, paid_amount dibiarkan. Sweep jalan per
// batch, tiap batch satu transaksi, supaya kerja per transaksi terbatas
// tapi semantik recompute-nya sama dengan sweep tunggal.
func (s *TuitionService) SetPricePerCredit(price int64) (int64, error) {
	if price < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Price must not be negative")
	}

	setting := m.Setting{
		Key:   m.SettingTuitionPricePerCredit,
		Value: strconv.FormatInt(price, 10),
	}
	if err := s.DB.Save(&setting).Error; err != nil {
		return 0, err
	}

	lastID := 0
	for {
		var batch []m.Tuition
		if err := s.DB.Where("id > ?", lastID).
			Order("id").
			Limit(sweepBatchSize).
			Find(&batch).Error; err != nil {
			return 0, err
		}
		if len(batch) == 0 {
			break
		}

		err := s.DB.Transaction(func(tx *gorm.DB) error {
			for _, t := range batch {
				if _, err := s.recalculateAt(tx, t.StudentID, t.Semester, price); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
		lastID = batch[len(batch)-1].ID
	}

	return price, nil
}

/* =========================
   Pembayaran
   ========================= */

// UpdatePayment mencatat paid_amount baru dan menurunkan ulang status.
// total_amount tidak diubah di sini.
func (s *TuitionService) UpdatePayment(tuitionID int, paidAmount int64) (*m.Tuition, error) {
	if paidAmount < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Paid amount must not be negative")
	}

	var tuition m.Tuition
	if err := s.DB.First(&tuition, tuitionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tuition not found")
		}
		return nil, err
	}

	tuition.PaidAmount = paidAmount
	tuition.Status = m.DeriveStatus(tuition.TotalAmount, paidAmount)
	if err := s.DB.Save(&tuition).Error; err != nil {
		return nil, err
	}
	return &tuition, nil
}
