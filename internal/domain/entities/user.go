package entities

import (
	"time"
)

// UserRole distinguishes tenants from property owners. The role is fixed at
// registration and never changes afterwards.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleOwner UserRole = "owner"
)

// SubscriptionStatus tracks the billing state of an owner account.
type SubscriptionStatus string

const (
	SubscriptionFreeTrial SubscriptionStatus = "FreeTrial"
	SubscriptionActive    SubscriptionStatus = "Active"
	SubscriptionBasic     SubscriptionStatus = "Basic"
)

// User represents an account in the system
type User struct {
	ID                 string             `json:"id" db:"id"`
	Name               string             `json:"name" db:"name"`
	Username           string             `json:"username" db:"username"`
	Email              string             `json:"email" db:"email"`
	Phone              string             `json:"phone" db:"phone"`
	Avatar             string             `json:"avatar,omitempty" db:"avatar"`
	Location           string             `json:"location,omitempty" db:"location"`
	Role               UserRole           `json:"role" db:"role"`
	ActivePlan         PlanID             `json:"active_plan,omitempty" db:"active_plan"`
	IsFirstMonth       bool               `json:"is_first_month" db:"is_first_month"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status,omitempty" db:"subscription_status"`
	PasswordHash       string             `json:"-" db:"password_hash"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// UserUpdate is a shallow partial update of mutable profile fields. Nil
// pointers leave the stored value untouched.
type UserUpdate struct {
	Name               *string             `json:"name,omitempty"`
	Username           *string             `json:"username,omitempty"`
	Phone              *string             `json:"phone,omitempty"`
	Avatar             *string             `json:"avatar,omitempty"`
	Location           *string             `json:"location,omitempty"`
	ActivePlan         *PlanID             `json:"active_plan,omitempty"`
	IsFirstMonth       *bool               `json:"is_first_month,omitempty"`
	SubscriptionStatus *SubscriptionStatus `json:"subscription_status,omitempty"`
}

// Empty reports whether the update carries no changes.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Username == nil && u.Phone == nil &&
		u.Avatar == nil && u.Location == nil && u.ActivePlan == nil &&
		u.IsFirstMonth == nil && u.SubscriptionStatus == nil
}

// HasActivePlan reports whether the user currently holds any subscription
// plan. Booking creation is gated on this.
func (u *User) HasActivePlan() bool {
	return u.ActivePlan != ""
}
