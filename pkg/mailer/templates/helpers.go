package templates

import (
	"time"
)

// Brand carries the company details shown in every email.
type Brand struct {
	AppName        string
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	SupportURL     string
	LoginURL       string
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		d.Time = t.UTC().Format("02 January 2006, 15:04")
	}
}

func WithRoles(roles []string) Option {
	return func(d *EmailData) { d.Roles = append([]string(nil), roles...) }
}

func WithChanged(fields []string) Option {
	return func(d *EmailData) { d.Changed = append([]string(nil), fields...) }
}

// NewBaseEmailData fills the common fields from b, then applies opts.
func NewBaseEmailData(b Brand, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		AppName:        b.AppName,

		LogoURL:    b.LogoURL,
		SupportURL: b.SupportURL,
		LoginURL:   b.LoginURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewAccountCreatedData(b Brand, name, email string, roles []string, opts ...Option) map[string]any {
	opts = append([]Option{WithRoles(roles)}, opts...)
	return ToMap(NewBaseEmailData(b, AccountCreated, name, email, opts...))
}

func NewProfileUpdatedData(b Brand, name, email string, changed []string, opts ...Option) map[string]any {
	opts = append([]Option{WithChanged(changed)}, opts...)
	return ToMap(NewBaseEmailData(b, ProfileUpdated, name, email, opts...))
}
