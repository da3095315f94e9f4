package checkout

import (
	"time"

	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
)

// ShippingRequest is the shipping step form
type ShippingRequest struct {
	FullName   string `json:"full_name" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"required,max=20,ke_phone"`
	Email      string `json:"email" binding:"required,email"`
	Address    string `json:"address" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	County     string `json:"county" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"omitempty,max=20"`
}

// ToAddress converts the form to a domain address
func (r ShippingRequest) ToAddress() trade.ShippingAddress {
	return trade.ShippingAddress{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Email:      r.Email,
		Address:    r.Address,
		City:       r.City,
		County:     r.County,
		PostalCode: r.PostalCode,
	}
}

// InstallationRequest is the installation step form.
// AppointmentDate is YYYY-MM-DD.
type InstallationRequest struct {
	Method              string `json:"method" binding:"required,oneof=self technician"`
	GarageID            string `json:"garage_id"`
	AppointmentDate     string `json:"appointment_date" binding:"omitempty,datetime=2006-01-02"`
	AppointmentTime     string `json:"appointment_time"`
	VehicleRegistration string `json:"vehicle_registration" binding:"omitempty,max=20"`
	VehicleMake         string `json:"vehicle_make" binding:"omitempty,max=50"`
	VehicleModel        string `json:"vehicle_model" binding:"omitempty,max=50"`
}

// Details converts the form to domain installation details
func (r InstallationRequest) Details(loc *time.Location) (trade.InstallationDetails, error) {
	d := trade.InstallationDetails{
		Method:              trade.InstallationMethod(r.Method),
		GarageID:            r.GarageID,
		AppointmentTime:     r.AppointmentTime,
		VehicleRegistration: r.VehicleRegistration,
		VehicleMake:         r.VehicleMake,
		VehicleModel:        r.VehicleModel,
	}
	if r.AppointmentDate != "" {
		date, err := time.ParseInLocation("2006-01-02", r.AppointmentDate, loc)
		if err != nil {
			return d, shared.NewDomainError(shared.ErrInvalidInput.Code, "Appointment date must look like 2025-06-30")
		}
		d.AppointmentDate = &date
	}
	return d, nil
}

// CardRequest carries card fields; they are passed to the gateway and never stored
type CardRequest struct {
	CardNumber string `json:"card_number" binding:"required,min=13,max=23"`
	ExpiryDate string `json:"expiry_date" binding:"required,max=7"`
	CVV        string `json:"cvv" binding:"required,numeric,min=3,max=4"`
}

// PaymentRequest is the payment step form
type PaymentRequest struct {
	Method      string       `json:"method" binding:"required,oneof=mpesa card bank"`
	PhoneNumber string       `json:"phone_number" binding:"omitempty,max=20,ke_phone"`
	Card        *CardRequest `json:"card" binding:"required_if=Method card"`
}

// Input converts the form to a PaymentInput
func (r PaymentRequest) Input() PaymentInput {
	in := PaymentInput{Method: trade.PaymentMethod(r.Method), PhoneNumber: r.PhoneNumber}
	if r.Card != nil {
		in.Card = &trade.CardDetails{
			CardNumber: r.Card.CardNumber,
			ExpiryDate: r.Card.ExpiryDate,
			CVV:        r.Card.CVV,
		}
	}
	return in
}

// StateResponse is the wizard state in API responses
type StateResponse struct {
	Step            string                     `json:"step"`
	ShippingAddress *trade.ShippingAddress     `json:"shipping_address,omitempty"`
	Installation    *trade.InstallationDetails `json:"installation,omitempty"`
	PaymentMethod   string                     `json:"payment_method,omitempty"`
	OrderID         string                     `json:"order_id,omitempty"`
}

// BankDetailsResponse is where a bank transfer goes
type BankDetailsResponse struct {
	ReferenceNumber string `json:"reference_number"`
	BankName        string `json:"bank_name"`
	AccountNumber   string `json:"account_number"`
	AccountName     string `json:"account_name"`
}

// PaymentOutcomeResponse is the result of an M-PESA or card payment
type PaymentOutcomeResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message"`
}

// ResultResponse is returned when checkout completes
type ResultResponse struct {
	Order         orderapp.OrderResponse  `json:"order"`
	Payment       *PaymentOutcomeResponse `json:"payment,omitempty"`
	BankTransfer  *BankDetailsResponse    `json:"bank_transfer,omitempty"`
	AppointmentID string                  `json:"appointment_id,omitempty"`
	NextSteps     []string                `json:"next_steps"`
}

// ToStateResponse converts the wizard state
func ToStateResponse(st *State) StateResponse {
	return StateResponse{
		Step:            string(st.Step),
		ShippingAddress: st.ShippingAddress,
		Installation:    st.Installation,
		PaymentMethod:   string(st.PaymentMethod),
		OrderID:         st.OrderID,
	}
}

// ToResultResponse converts a checkout result
func ToResultResponse(r *Result) ResultResponse {
	resp := ResultResponse{
		Order:     orderapp.ToOrderResponse(r.Order),
		NextSteps: r.NextSteps,
	}
	if r.Payment != nil {
		resp.Payment = &PaymentOutcomeResponse{
			Success:       r.Payment.Success,
			TransactionID: r.Payment.TransactionID,
			Message:       r.Payment.Message,
		}
	}
	if r.BankTransfer != nil {
		resp.BankTransfer = &BankDetailsResponse{
			ReferenceNumber: r.BankTransfer.ReferenceNumber,
			BankName:        r.BankTransfer.BankDetails.BankName,
			AccountNumber:   r.BankTransfer.BankDetails.AccountNumber,
			AccountName:     r.BankTransfer.BankDetails.AccountName,
		}
	}
	if r.Appointment != nil {
		resp.AppointmentID = r.Appointment.AppointmentID
	}
	return resp
}
