package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/shopspring/decimal"
)

// CreateVehicleRequest represents a request to add a vehicle to the fleet
type CreateVehicleRequest struct {
	LicensePlate string           `json:"license_plate" binding:"max=20"`
	Make         string           `json:"make" binding:"max=100"`
	Model        string           `json:"model" binding:"max=100"`
	Year         int              `json:"year"`
	Color        string           `json:"color" binding:"max=50"`
	VIN          string           `json:"vin" binding:"max=17"`
	VehicleType  string           `json:"vehicle_type" binding:"max=50"`
	DailyRate    *decimal.Decimal `json:"daily_rate"`
	Mileage      int64            `json:"mileage"`
	FuelType     string           `json:"fuel_type" binding:"max=30"`
	Transmission string           `json:"transmission" binding:"max=30"`
	Seats        int              `json:"seats"`
	Quantity     int              `json:"quantity"`
	Description  string           `json:"description"`
	Notes        string           `json:"notes"`
	BranchID     *uuid.UUID       `json:"branch_id"`
	Images       []VehicleImageDTO `json:"images"`
	CreatedBy    *uuid.UUID       `json:"-"`
}

// UpdateVehicleRequest represents a request to update a vehicle
type UpdateVehicleRequest struct {
	LicensePlate *string           `json:"license_plate" binding:"omitempty,max=20"`
	Make         *string           `json:"make" binding:"omitempty,max=100"`
	Model        *string           `json:"model" binding:"omitempty,max=100"`
	Year         *int              `json:"year"`
	Color        *string           `json:"color" binding:"omitempty,max=50"`
	VIN          *string           `json:"vin" binding:"omitempty,max=17"`
	VehicleType  *string           `json:"vehicle_type" binding:"omitempty,max=50"`
	DailyRate    *decimal.Decimal  `json:"daily_rate"`
	Mileage      *int64            `json:"mileage"`
	FuelType     *string           `json:"fuel_type" binding:"omitempty,max=30"`
	Transmission *string           `json:"transmission" binding:"omitempty,max=30"`
	Seats        *int              `json:"seats"`
	Quantity     *int              `json:"quantity"`
	Description  *string           `json:"description"`
	Notes        *string           `json:"notes"`
	BranchID     *uuid.UUID        `json:"branch_id"`
	Images       []VehicleImageDTO `json:"images"`
}

// VehicleImageDTO represents a vehicle image in requests and responses
type VehicleImageDTO struct {
	URL       string `json:"url" binding:"required,max=500"`
	Alt       string `json:"alt" binding:"max=200"`
	IsPrimary bool   `json:"is_primary"`
}

// VehicleResponse represents a vehicle in API responses
type VehicleResponse struct {
	ID           uuid.UUID         `json:"id"`
	TenantID     uuid.UUID         `json:"tenant_id"`
	LicensePlate string            `json:"license_plate"`
	Make         string            `json:"make"`
	Model        string            `json:"model"`
	Year         int               `json:"year"`
	Color        string            `json:"color"`
	VIN          string            `json:"vin"`
	VehicleType  string            `json:"vehicle_type"`
	DailyRate    decimal.Decimal   `json:"daily_rate"`
	Mileage      int64             `json:"mileage"`
	FuelType     string            `json:"fuel_type"`
	Transmission string            `json:"transmission"`
	Seats        int               `json:"seats"`
	Quantity     int               `json:"quantity"`
	Description  string            `json:"description"`
	Notes        string            `json:"notes"`
	Status       string            `json:"status"`
	Listing      string            `json:"listing"`
	BranchID     *uuid.UUID        `json:"branch_id"`
	Images       []VehicleImageDTO `json:"images"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Version      int               `json:"version"`
}

// ToVehicleResponse converts a domain vehicle to a response
func ToVehicleResponse(v *fleet.Vehicle) VehicleResponse {
	images := make([]VehicleImageDTO, len(v.Images))
	for i, img := range v.Images {
		images[i] = VehicleImageDTO{URL: img.URL, Alt: img.Alt, IsPrimary: img.IsPrimary}
	}

	return VehicleResponse{
		ID:           v.ID,
		TenantID:     v.TenantID,
		LicensePlate: v.LicensePlate,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		Color:        v.Color,
		VIN:          v.VIN,
		VehicleType:  v.VehicleType,
		DailyRate:    v.DailyRate,
		Mileage:      v.Mileage,
		FuelType:     v.FuelType,
		Transmission: v.Transmission,
		Seats:        v.Seats,
		Quantity:     v.Quantity,
		Description:  v.Description,
		Notes:        v.Notes,
		Status:       string(v.Status),
		Listing:      string(v.Listing),
		BranchID:     v.BranchID,
		Images:       images,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
		Version:      v.Version,
	}
}

// VehicleListFilter represents filter options for the vehicle list
type VehicleListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
	Search      string `form:"search"`
	Status      string `form:"status"`
	Listing     string `form:"listing"`
	VehicleType string `form:"vehicle_type"`
}
