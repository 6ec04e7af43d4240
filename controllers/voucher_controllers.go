package controllers

import (
	"net/http"
	"time"

	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

type VoucherController struct {
	Vouchers *services.VoucherService
}

func NewVoucherController(vouchers *services.VoucherService) *VoucherController {
	return &VoucherController{Vouchers: vouchers}
}

type voucherRequest struct {
	Code      string     `json:"code" binding:"required"`
	Discount  int64      `json:"discount"`
	MaxUsage  *int       `json:"max_usage"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  *bool      `json:"is_active"`
}

func (r voucherRequest) input() services.VoucherInput {
	in := services.VoucherInput{
		Code:      r.Code,
		Discount:  r.Discount,
		MaxUsage:  r.MaxUsage,
		ExpiresAt: r.ExpiresAt,
		IsActive:  true,
	}
	if r.IsActive != nil {
		in.IsActive = *r.IsActive
	}
	return in
}

func (vc *VoucherController) GetAllVouchers(c *gin.Context) {
	vouchers, err := vc.Vouchers.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of vouchers", vouchers)
}

func (vc *VoucherController) CreateVoucher(c *gin.Context) {
	var req voucherRequest
	if !bindJSON(c, &req) {
		return
	}
	voucher, err := vc.Vouchers.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Voucher created", voucher)
}

func (vc *VoucherController) UpdateVoucher(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req voucherRequest
	if !bindJSON(c, &req) {
		return
	}
	voucher, err := vc.Vouchers.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Voucher updated", voucher)
}

func (vc *VoucherController) DeleteVoucher(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := vc.Vouchers.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Voucher deleted", nil)
}

// ValidateVoucher always answers 200; the outcome is in data.valid.
func (vc *VoucherController) ValidateVoucher(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if !bindJSON(c, &req) {
		return
	}
	result, err := vc.Vouchers.Validate(c.Request.Context(), req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "Voucher is valid"
	if !result.Valid {
		message = result.Error
	}
	utils.RespondJSON(c, http.StatusOK, message, result)
}

func (vc *VoucherController) ApplyVoucher(c *gin.Context) {
	var req struct {
		VoucherCode string `json:"voucher_code" binding:"required"`
		OrderID     uint   `json:"order_id" binding:"required"`
		Discount    int64  `json:"discount"`
	}
	if !bindJSON(c, &req) {
		return
	}
	entry, err := vc.Vouchers.Redeem(c.Request.Context(), req.VoucherCode, req.OrderID, req.Discount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Voucher applied", entry)
}

func (vc *VoucherController) GetVoucherLogs(c *gin.Context) {
	logs, err := vc.Vouchers.Logs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Voucher usage logs", logs)
}
