package crm

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer profile
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// CustomerProfile represents a rental customer.
// It is the aggregate root for customer-related operations.
type CustomerProfile struct {
	shared.TenantAggregateRoot
	Code          string         `gorm:"type:varchar(50);not null;index"`
	FullName      string         `gorm:"type:varchar(200);not null"`
	Email         string         `gorm:"type:varchar(200);index"`
	Phone         string         `gorm:"type:varchar(50);index"`
	LicenseNumber string         `gorm:"type:varchar(50)"` // Driving licence number
	Address       string         `gorm:"type:text"`
	City          string         `gorm:"type:varchar(100)"`
	PostalCode    string         `gorm:"type:varchar(20)"`
	Status        CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes         string         `gorm:"type:text"`
	Attributes    string         `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (CustomerProfile) TableName() string {
	return "customer_profiles"
}

// NewCustomerProfile creates a new customer profile with required fields
func NewCustomerProfile(tenantID uuid.UUID, code, fullName string) (*CustomerProfile, error) {
	if err := validateCustomerCode(code); err != nil {
		return nil, err
	}
	if err := validateCustomerName(fullName); err != nil {
		return nil, err
	}

	customer := &CustomerProfile{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		FullName:            fullName,
		Status:              CustomerStatusActive,
		Attributes:          "{}",
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *CustomerProfile) Update(fullName string) error {
	if err := validateCustomerName(fullName); err != nil {
		return err
	}

	c.FullName = fullName
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetContact sets the customer's contact information
func (c *CustomerProfile) SetContact(phone, email string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetLicenseNumber sets the customer's driving licence number
func (c *CustomerProfile) SetLicenseNumber(license string) error {
	if license != "" && len(license) > 50 {
		return shared.NewDomainError("INVALID_LICENSE", "Licence number cannot exceed 50 characters")
	}

	c.LicenseNumber = license
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress sets the customer's address information
func (c *CustomerProfile) SetAddress(address, city, postalCode string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if postalCode != "" && len(postalCode) > 20 {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code cannot exceed 20 characters")
	}

	c.Address = address
	c.City = city
	c.PostalCode = postalCode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the customer's notes
func (c *CustomerProfile) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetAttributes sets custom attributes as JSON
func (c *CustomerProfile) SetAttributes(attributes string) error {
	if attributes == "" {
		attributes = "{}"
	}
	trimmed := strings.TrimSpace(attributes)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return shared.NewDomainError("INVALID_ATTRIBUTES", "Attributes must be valid JSON object")
	}

	c.Attributes = trimmed
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate activates the customer
func (c *CustomerProfile) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, CustomerStatusInactive, CustomerStatusActive))

	return nil
}

// Deactivate deactivates the customer. Deactivation is the soft-delete
// path: the row is retained and excluded from active listings.
func (c *CustomerProfile) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	oldStatus := c.Status
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusInactive))

	return nil
}

// IsActive returns true if the customer is active
func (c *CustomerProfile) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// Validation functions

func validateCustomerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Customer code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
