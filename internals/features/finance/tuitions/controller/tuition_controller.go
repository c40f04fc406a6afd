package controller

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "lms_backend/internals/features/finance/tuitions/dto"
	m "lms_backend/internals/features/finance/tuitions/model"
	svc "lms_backend/internals/features/finance/tuitions/service"
	helper "lms_backend/internals/helpers"
)

type TuitionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Tuitions *svc.TuitionService
}

func New(db *gorm.DB, v *validator.Validate) *TuitionController {
	return &TuitionController{DB: db, Validate: v, Tuitions: svc.NewTuitionService(db)}
}

func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

/* =========================
   Harga per SKS
   ========================= */

func (ctl *TuitionController) GetPrice(c *fiber.Ctx) error {
	price, err := ctl.Tuitions.CurrentPrice()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", fiber.Map{"price_per_credit": price})
}

// SetPrice menyimpan harga baru lalu menyapu semua baris tuition dengan
// harga tersebut (TuitionService.SetPricePerCredit).
func (ctl *TuitionController) SetPrice(c *fiber.Ctx) error {
	var req d.SetPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	price, err := ctl.Tuitions.SetPricePerCredit(req.PricePerCredit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Price updated", fiber.Map{"price_per_credit": price})
}

/* =========================
   Tuition rows
   ========================= */

func (ctl *TuitionController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.Model(&m.Tuition{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var tuitions []m.Tuition
	if err := ctl.DB.Order("id").Offset(p.Offset).Limit(p.Limit).Find(&tuitions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", tuitions, helper.BuildPagination(total, p))
}

func (ctl *TuitionController) StudentTuitions(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var tuitions []m.Tuition
	if err := ctl.DB.Where("student_id = ?", studentID).
		Order("semester").Find(&tuitions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", tuitions)
}

// UpdatePayment mencatat pembayaran; status diturunkan ulang dari
// total & paid.
func (ctl *TuitionController) UpdatePayment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req d.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tuition, err := ctl.Tuitions.UpdatePayment(id, req.PaidAmount)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Payment updated", tuition)
}
