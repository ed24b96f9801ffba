package checkout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Step is a checkout step, numbered from one.
type Step int

const (
	StepCustomer Step = iota + 1
	StepShipping
	StepPayment
	StepReview
)

// Steps lists every step in order.
var Steps = []Step{StepCustomer, StepShipping, StepPayment, StepReview}

// ParseStep parses a step number coming from a URL.
func ParseStep(s string) (Step, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < int(StepCustomer) || n > int(StepReview) {
		return 0, ErrUnknownStep
	}
	return Step(n), nil
}

func (s Step) String() string {
	return strconv.Itoa(int(s))
}

// Title is the heading shown for the step.
func (s Step) Title() string {
	switch s {
	case StepCustomer:
		return "Información personal"
	case StepShipping:
		return "Dirección de envío"
	case StepPayment:
		return "Método de pago"
	case StepReview:
		return "Confirmar pedido"
	default:
		return ""
	}
}

// Customer is the step one data.
type Customer struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	Phone     string `json:"telefono"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Address is the step two data.
type Address struct {
	Country    string `json:"pais"`
	City       string `json:"ciudad"`
	PostalCode string `json:"codigo-postal"`
	Street     string `json:"direccion"`
}

// Payment is what is kept of the card once step three passes.
type Payment struct {
	Last4  string `json:"last4"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
}

// Masked renders the card number for display.
func (p Payment) Masked() string {
	return "•••• •••• •••• " + p.Last4
}

// StepForm is the union of every step's form fields. Only the fields of
// the submitted step are read.
type StepForm struct {
	FirstName  string `form:"nombre"`
	LastName   string `form:"apellido"`
	Email      string `form:"email"`
	Phone      string `form:"telefono"`
	Country    string `form:"pais"`
	City       string `form:"ciudad"`
	PostalCode string `form:"codigo-postal"`
	Street     string `form:"direccion"`
	CardNumber string `form:"tarjeta-numero"`
	CardHolder string `form:"tarjeta-nombre"`
	CardCVC    string `form:"tarjeta-cvc"`
	CardExpiry string `form:"tarjeta-fecha"`
}

var (
	phonePattern      = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
	postalCodePattern = regexp.MustCompile(`^[A-Za-z0-9 -]{3,10}$`)
	cardNumberPattern = regexp.MustCompile(`^[0-9]{13,19}$`)
	cvcPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// Customer validates and returns the step one fields.
func (f StepForm) Customer() (Customer, error) {
	c := Customer{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.ToLower(strings.TrimSpace(f.Email)),
		Phone:     strings.TrimSpace(f.Phone),
	}
	err := validator.Apply(
		validator.RequiredString("nombre", c.FirstName),
		validator.MaxLenString("nombre", c.FirstName, 50),
		validator.RequiredString("apellido", c.LastName),
		validator.MaxLenString("apellido", c.LastName, 50),
		validator.RequiredString("email", c.Email),
		validator.ValidEmail("email", c.Email),
		validator.RequiredString("telefono", c.Phone),
		validator.MatchesPattern("telefono", c.Phone, phonePattern, "must be a valid phone number"),
	)
	return c, err
}

// Address validates and returns the step two fields.
func (f StepForm) Address() (Address, error) {
	a := Address{
		Country:    strings.TrimSpace(f.Country),
		City:       strings.TrimSpace(f.City),
		PostalCode: strings.TrimSpace(f.PostalCode),
		Street:     strings.TrimSpace(f.Street),
	}
	err := validator.Apply(
		validator.RequiredString("pais", a.Country),
		validator.MaxLenString("pais", a.Country, 60),
		validator.RequiredString("ciudad", a.City),
		validator.MaxLenString("ciudad", a.City, 60),
		validator.RequiredString("codigo-postal", a.PostalCode),
		validator.MatchesPattern("codigo-postal", a.PostalCode, postalCodePattern, "must be a valid postal code"),
		validator.RequiredString("direccion", a.Street),
		validator.LenRangeString("direccion", a.Street, 5, 200),
	)
	return a, err
}

// Payment validates the card and keeps only its last four digits.
func (f StepForm) Payment() (Payment, error) {
	number := strings.NewReplacer(" ", "", "-", "").Replace(f.CardNumber)
	holder := strings.TrimSpace(f.CardHolder)
	expiry := strings.TrimSpace(f.CardExpiry)
	cvc := strings.TrimSpace(f.CardCVC)

	err := validator.Apply(
		validator.RequiredString("tarjeta-numero", number),
		validator.MatchesPattern("tarjeta-numero", number, cardNumberPattern, "must be a card number"),
		validator.RequiredString("tarjeta-nombre", holder),
		validator.MaxLenString("tarjeta-nombre", holder, 100),
		validator.RequiredString("tarjeta-cvc", cvc),
		validator.MatchesPattern("tarjeta-cvc", cvc, cvcPattern, "must be 3 or 4 digits"),
		validator.RequiredString("tarjeta-fecha", expiry),
		validator.MatchesPattern("tarjeta-fecha", expiry, expiryPattern, "must look like MM/YY"),
	)
	if err != nil {
		return Payment{}, err
	}
	return Payment{Last4: number[len(number)-4:], Holder: holder, Expiry: expiry}, nil
}
