package constvars

const (
	RegexContainAtLeastOneSpecialChar = `.*[!@#$%^&*(),.?":{}|<>].*`
	RegexContainAtLeastOneUppercase   = `.*[A-Z].*`
	RegexEmail                        = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexYear                         = `^\d{4}$`
	RegexDateYYYYMMDD                 = `^\d{4}-\d{2}-\d{2}$`
)
