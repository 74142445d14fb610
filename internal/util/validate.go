package util

import (
	"regexp"
	"strings"
)

// 用户注册/更新表单的固定校验。错误以消息列表形式累积返回，空列表即通过。

var (
	phonePlainRegEx  = regexp.MustCompile(`^[0-9]{10}$`)
	phoneHyphenRegEx = regexp.MustCompile(`^\(?([0-9]{3})\)?[-]?([0-9]{3})[-]?([0-9]{4})$`)
	emailRegEx       = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)
	zipRegEx         = regexp.MustCompile(`^[0-9]{5}$`)
)

// UserFieldsRequest 用户表单字段，来自注册/更新请求
type UserFieldsRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	UserType  string `json:"userType"`
	Phone     string `json:"phone"`
	Zipcode   string `json:"zipCode"`
	County    string `json:"county"`
}

func checkNotEmpty(req *UserFieldsRequest, errs *[]string, field string) {
	switch field {
	case "firstName":
		if strings.TrimSpace(req.FirstName) == "" {
			*errs = append(*errs, "Please enter your first name")
		}
	case "lastName":
		if strings.TrimSpace(req.LastName) == "" {
			*errs = append(*errs, "Please enter your last name")
		}
	case "userName":
		if strings.TrimSpace(req.UserName) == "" {
			*errs = append(*errs, "Please enter an username")
		}
	case "userType":
		if strings.TrimSpace(req.UserType) == "" {
			*errs = append(*errs, "Please choose your best user type from the list below")
		}
	case "password":
		if strings.TrimSpace(req.Password) == "" {
			*errs = append(*errs, "Please enter a password")
		}
	case "county":
		if strings.TrimSpace(req.County) == "" {
			*errs = append(*errs, "Please choose your county of residence")
		}
	case "email":
		if strings.TrimSpace(req.Email) == "" {
			*errs = append(*errs, "Please enter an email")
		}
	}
}

// ValidatePhone 校验手机号。可接受 ###-###-#### 或 ##########，留空跳过。
func ValidatePhone(phone string, errs *[]string) {
	if phone == "" {
		return
	}
	if !phonePlainRegEx.MatchString(phone) && !phoneHyphenRegEx.MatchString(phone) {
		*errs = append(*errs, "Phone number is invalid")
	}
}

// ValidateZipCode 校验邮编，必须是 5 位数字，留空跳过。
func ValidateZipCode(zip string, errs *[]string) {
	if zip == "" {
		return
	}
	if !zipRegEx.MatchString(strings.TrimSpace(zip)) {
		*errs = append(*errs, "Enter 5-digit zipcode")
	}
}

// ValidateEmail 校验邮箱格式，留空跳过。
func ValidateEmail(email string, errs *[]string) {
	if email == "" {
		return
	}
	if !emailRegEx.MatchString(email) {
		*errs = append(*errs, "Email address is invalid")
	}
}

// ValidatePassword2 校验确认密码与密码一致。
func ValidatePassword2(password, password2 string, errs *[]string) {
	if strings.TrimSpace(password) != strings.TrimSpace(password2) {
		if password2 == "" {
			*errs = append(*errs, "Please confirm password")
		} else {
			*errs = append(*errs, "Passwords do not match")
		}
	}
}

// ValidateBasicFields 普通用户注册的完整校验，返回累积的错误列表。
func ValidateBasicFields(req *UserFieldsRequest) []string {
	errs := []string{}
	for _, field := range []string{"firstName", "lastName", "email", "userName", "password", "userType", "county"} {
		checkNotEmpty(req, &errs, field)
	}
	ValidatePhone(req.Phone, &errs)
	ValidateZipCode(req.Zipcode, &errs)
	ValidateEmail(req.Email, &errs)
	ValidatePassword2(req.Password, req.Password2, &errs)
	return errs
}

// ValidateAdminBasicFields 管理员注册校验，不要求 userType 和 county。
func ValidateAdminBasicFields(req *UserFieldsRequest) []string {
	errs := []string{}
	for _, field := range []string{"firstName", "lastName", "email", "userName", "password"} {
		checkNotEmpty(req, &errs, field)
	}
	ValidatePhone(req.Phone, &errs)
	ValidateZipCode(req.Zipcode, &errs)
	ValidateEmail(req.Email, &errs)
	ValidatePassword2(req.Password, req.Password2, &errs)
	return errs
}
