package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// CommunicationChannel represents how a customer was contacted
type CommunicationChannel string

const (
	ChannelPhone    CommunicationChannel = "phone"
	ChannelEmail    CommunicationChannel = "email"
	ChannelSMS      CommunicationChannel = "sms"
	ChannelInPerson CommunicationChannel = "in_person"
)

// IsValid returns true if the channel is valid
func (c CommunicationChannel) IsValid() bool {
	switch c {
	case ChannelPhone, ChannelEmail, ChannelSMS, ChannelInPerson:
		return true
	default:
		return false
	}
}

// CommunicationLog is an append-only record of a customer interaction
type CommunicationLog struct {
	shared.TenantAggregateRoot
	CustomerID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Channel    CommunicationChannel `gorm:"type:varchar(20);not null"`
	Subject    string               `gorm:"type:varchar(200);not null"`
	Body       string               `gorm:"type:text"`
	LoggedAt   time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CommunicationLog) TableName() string {
	return "communication_logs"
}

// NewCommunicationLog creates a new communication log entry
func NewCommunicationLog(tenantID, customerID uuid.UUID, channel CommunicationChannel, subject, body string) (*CommunicationLog, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Communication log requires a customer")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Invalid communication channel")
	}
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Communication subject cannot be empty")
	}
	if len(subject) > 200 {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Communication subject cannot exceed 200 characters")
	}

	return &CommunicationLog{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		Channel:             channel,
		Subject:             subject,
		Body:                body,
		LoggedAt:            time.Now(),
	}, nil
}
