package auth

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Validation messages shown under the form fields
const (
	MsgInvalidEmail      = "Email inválido"
	MsgLoginPasswordMin  = "A senha deve ter no mínimo 8 caracteres"
	MsgNameRequired      = "Nome completo é obrigatório"
	MsgPasswordMin       = "A senha deve ter pelo menos 8 caracteres"
	MsgPasswordLowercase = "A senha deve conter pelo menos 1 letra minúscula"
	MsgPasswordUppercase = "A senha deve conter pelo menos 1 letra maiúscula"
	MsgPasswordNumber    = "A senha deve conter pelo menos 1 número"
	MsgPasswordSpecial   = "A senha deve conter pelo menos 1 caractere especial"
	MsgPasswordMismatch  = "As senhas não coincidem"
	MsgCodeLength        = "O código deve ter exatamente 6 caracteres"
	MsgCodeRequired      = "Código é obrigatório"
)

const (
	MinPasswordLength = 8
	CodeLength        = 6
)

var (
	lowercaseRe = regexp.MustCompile(`[a-z]`)
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	numberRe    = regexp.MustCompile(`[0-9]`)
	specialRe   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

type passwordRule struct {
	re      *regexp.Regexp
	message string
}

var passwordRules = []passwordRule{
	{lowercaseRe, MsgPasswordLowercase},
	{uppercaseRe, MsgPasswordUppercase},
	{numberRe, MsgPasswordNumber},
	{specialRe, MsgPasswordSpecial},
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(MsgInvalidEmail),
		is.Email.Error(MsgInvalidEmail),
	}
}

// passwordStrengthRules reports the first unmet rule, in the order the checklist shows them
func passwordStrengthRules() []validation.Rule {
	rules := []validation.Rule{
		validation.Required.Error(MsgPasswordMin),
		validation.RuneLength(MinPasswordLength, 0).Error(MsgPasswordMin),
	}
	for _, r := range passwordRules {
		rules = append(rules, validation.Match(r.re).Error(r.message))
	}
	return rules
}

// PasswordProblems lists every unmet password rule, empty when the password is acceptable
func PasswordProblems(password string) []string {
	var problems []string
	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, MsgPasswordMin)
	}
	for _, r := range passwordRules {
		if !r.re.MatchString(password) {
			problems = append(problems, r.message)
		}
	}
	return problems
}

// MatchesString fails with message when the value differs from str
func MatchesString(str, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != str {
			return errors.New(message)
		}
		return nil
	}
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password,
			validation.Required.Error(MsgLoginPasswordMin),
			validation.RuneLength(MinPasswordLength, 0).Error(MsgLoginPasswordMin),
		),
	)
}

// SignUpIdentityForm is the first sign-up step
type SignUpIdentityForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (f SignUpIdentityForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error(MsgNameRequired)),
		validation.Field(&f.Email, emailRules()...),
	)
}

// PasswordForm is the second sign-up step
type PasswordForm struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f PasswordForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Password, passwordStrengthRules()...),
		validation.Field(&f.ConfirmPassword, validation.By(MatchesString(f.Password, MsgPasswordMismatch))),
	)
}

type VerificationForm struct {
	Code string `json:"code"`
}

func (f VerificationForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Code,
			validation.Required.Error(MsgCodeLength),
			validation.RuneLength(CodeLength, CodeLength).Error(MsgCodeLength),
		),
	)
}

type ForgotPasswordForm struct {
	Email string `json:"email"`
}

func (f ForgotPasswordForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules()...),
	)
}

// ResetPasswordForm is the recovery code step: code, new password and confirmation
type ResetPasswordForm struct {
	Code            string `json:"code"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f ResetPasswordForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Code, validation.Required.Error(MsgCodeRequired)),
		validation.Field(&f.NewPassword, passwordStrengthRules()...),
		validation.Field(&f.ConfirmPassword, validation.By(MatchesString(f.NewPassword, MsgPasswordMismatch))),
	)
}

// FieldErrors flattens ozzo errors into field -> message. Errors that are not
// field scoped are returned under the "form" key.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}
	out["form"] = err.Error()
	return out
}
