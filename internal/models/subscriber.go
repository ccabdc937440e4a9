// Package models содержит доменные типы административного бэкенда.
package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// SubscriberType тип подписчика. В базе хранится однобуквенным кодом.
type SubscriberType string

const (
	// TypeNormal обычный подписчик, код "N" или пустое значение.
	TypeNormal SubscriberType = "Normal"
	// TypeCorporate корпоративный подписчик, код "C".
	TypeCorporate SubscriberType = "Corporate"
	// TypeSingle индивидуальный подписчик, код "S".
	TypeSingle SubscriberType = "Single"
)

// Code возвращает код типа для хранения.
func (t SubscriberType) Code() string {
	switch t {
	case TypeCorporate:
		return "C"
	case TypeSingle:
		return "S"
	default:
		return "N"
	}
}

// TypeFromCode разбирает код из базы. Неизвестный код считается обычным подписчиком.
func TypeFromCode(code string) SubscriberType {
	switch code {
	case "C":
		return TypeCorporate
	case "S":
		return TypeSingle
	default:
		return TypeNormal
	}
}

// Scan реализует sql.Scanner.
func (t *SubscriberType) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = TypeNormal
	case string:
		*t = TypeFromCode(v)
	case []byte:
		*t = TypeFromCode(string(v))
	default:
		return fmt.Errorf("models.SubscriberType: unsupported type %T", src)
	}
	return nil
}

// Value реализует driver.Valuer.
func (t SubscriberType) Value() (driver.Value, error) {
	return t.Code(), nil
}

// Статусы учётной записи подписчика.
const (
	StatusActive = "active"
	StatusNew    = "new"
)

// Subscriber учётная запись подписчика.
type Subscriber struct {
	ID             int            `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	FirstName      string         `db:"first_name" json:"firstName"`
	LastName       string         `db:"last_name" json:"lastName"`
	Company        string         `db:"company" json:"company"`
	Department     string         `db:"department" json:"department"`
	Address1       string         `db:"address1" json:"address1"`
	Address2       string         `db:"address2" json:"address2"`
	CountryID      int            `db:"country_id" json:"countryId"`
	Phone          string         `db:"phone" json:"phone"`
	SectorInterest string         `db:"sector_interest" json:"sectorInterest"`
	Email          string         `db:"email" json:"email"`
	Username       string         `db:"username" json:"username"`
	PasswordHash   string         `db:"password_hash" json:"-"`
	Type           SubscriberType `db:"type" json:"type"`
	Status         string         `db:"status" json:"status"`
	PaymentMethod  string         `db:"payment_method" json:"paymentMethod"`
	Paid           bool           `db:"paid" json:"paid"`
	JoinedAt       time.Time      `db:"joined_at" json:"joinedAt"`
}

// SubscriberInput поля формы создания и изменения подписчика.
type SubscriberInput struct {
	Title          string         `json:"title" validate:"max=20"`
	FirstName      string         `json:"firstName" validate:"required,max=100"`
	LastName       string         `json:"lastName" validate:"required,max=100"`
	Company        string         `json:"company" validate:"max=200"`
	Department     string         `json:"department" validate:"max=200"`
	Address1       string         `json:"address1" validate:"max=255"`
	Address2       string         `json:"address2" validate:"max=255"`
	CountryID      int            `json:"countryId" validate:"min=0"`
	Phone          string         `json:"phone" validate:"max=50"`
	SectorInterest string         `json:"sectorInterest" validate:"max=255"`
	Email          string         `json:"email" validate:"required,email"`
	Username       string         `json:"username" validate:"required,min=3,max=100"`
	Password       string         `json:"password" validate:"omitempty,min=6,max=72"`
	Type           SubscriberType `json:"type" validate:"omitempty,oneof=Normal Corporate Single"`
	Status         string         `json:"status" validate:"omitempty,oneof=active new"`
	PaymentMethod  string         `json:"paymentMethod" validate:"max=50"`
	Paid           bool           `json:"paid"`
}
