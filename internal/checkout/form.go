package checkout

import (
	"errors"
	"strings"

	"storefront/internal/domain/orders"
	"storefront/internal/errs"

	"github.com/go-playground/validator/v10"
)

const (
	PayCredit = "credit"
	PayBoleto = "boleto"
)

// Messages shown next to the checkout form.
const (
	MsgRequiredFields  = "Por favor, preencha todos os campos obrigatórios."
	MsgInvalidCPF      = "CPF deve ter 11 dígitos."
	MsgInvalidPhone    = "Número de telefone inválido."
	MsgInvalidCEP      = "CEP deve ter 8 dígitos."
	MsgInvalidEmail    = "E-mail inválido."
	MsgInvalidPayment  = "Forma de pagamento inválida."
	MsgCardName        = "Nome do cartão é obrigatório."
	MsgCardNumber      = "Número do cartão inválido."
	MsgCardExpiry      = "Data de validade inválida."
	MsgCardCVV         = "CVV inválido."
	MsgShippingMissing = "Por favor, calcule o frete antes de finalizar."
	MsgShippingChanged = "O frete grátis não se aplica mais. Volte ao carrinho e calcule o frete novamente."
)

// Form is the checkout form as submitted. Card fields are only read when
// paying by credit card and are never stored.
type Form struct {
	FullName      string `json:"fullName" validate:"required"`
	CPF           string `json:"cpf" validate:"required,cpf"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,brphone"`
	Address       string `json:"address" validate:"required"`
	Complement    string `json:"complement"`
	Neighborhood  string `json:"neighborhood" validate:"required"`
	City          string `json:"city" validate:"required"`
	ZipCode       string `json:"zipcode" validate:"required,cep"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=credit boleto"`
	CardName      string `json:"cardName"`
	CardNumber    string `json:"cardNumber"`
	ExpiryDate    string `json:"expiryDate"`
	CVV           string `json:"cvv"`
}

var formValidator *validator.Validate

func init() {
	formValidator = validator.New(validator.WithRequiredStructEnabled())

	formValidator.RegisterValidation("cpf", digitCount(11, 11))
	formValidator.RegisterValidation("brphone", digitCount(10, 11))
	formValidator.RegisterValidation("cep", digitCount(8, 8))
}

// digitCount accepts a field whose digits number between lo and hi, any
// punctuation aside.
func digitCount(lo, hi int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		n := len(onlyDigits(fl.Field().String()))
		return n >= lo && n <= hi
	}
}

var tagMessages = map[string]string{
	"cpf":     MsgInvalidCPF,
	"brphone": MsgInvalidPhone,
	"cep":     MsgInvalidCEP,
	"email":   MsgInvalidEmail,
	"oneof":   MsgInvalidPayment,
}

func (f *Form) trim() {
	for _, p := range []*string{
		&f.FullName, &f.CPF, &f.Email, &f.Phone, &f.Address, &f.Complement,
		&f.Neighborhood, &f.City, &f.ZipCode, &f.PaymentMethod,
		&f.CardName, &f.CardNumber, &f.ExpiryDate, &f.CVV,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// Validate checks the form the way the checkout page reports it: missing
// required fields first, then the first malformed field, then the card.
func (f *Form) Validate() error {
	f.trim()

	if err := formValidator.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return errs.Validation(MsgRequiredFields)
			}
		}
		if msg, ok := tagMessages[verrs[0].Tag()]; ok {
			return errs.Validation(msg)
		}
		return errs.Validation(MsgRequiredFields)
	}

	if f.PaymentMethod == PayCredit {
		return f.validateCard()
	}
	return nil
}

func (f *Form) validateCard() error {
	switch {
	case f.CardName == "":
		return errs.Validation(MsgCardName)
	case len(onlyDigits(f.CardNumber)) < 13:
		return errs.Validation(MsgCardNumber)
	case !strings.Contains(f.ExpiryDate, "/"):
		return errs.Validation(MsgCardExpiry)
	case len(f.CVV) < 3:
		return errs.Validation(MsgCardCVV)
	}
	return nil
}

// Payment maps the form choice to the recorded method and installments.
func (f *Form) Payment() (method string, installments int) {
	if f.PaymentMethod == PayCredit {
		return orders.PaymentCreditCard, 10
	}
	return orders.PaymentBoleto, 1
}

func (f *Form) ShipTo(state string) orders.Address {
	return orders.Address{
		FullName:     f.FullName,
		CPF:          onlyDigits(f.CPF),
		Email:        f.Email,
		Phone:        onlyDigits(f.Phone),
		Address:      f.Address,
		Complement:   f.Complement,
		Neighborhood: f.Neighborhood,
		City:         f.City,
		State:        state,
		ZipCode:      onlyDigits(f.ZipCode),
	}
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
