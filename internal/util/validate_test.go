package util

import "testing"

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"", true}, // 留空跳过
		{"9701234567", true},
		{"970-123-4567", true},
		{"(970)123-4567", true},
		{"123", false},
		{"phone", false},
	}
	for _, tc := range cases {
		errs := []string{}
		ValidatePhone(tc.phone, &errs)
		if (len(errs) == 0) != tc.ok {
			t.Fatalf("phone %q: got errs %v, want ok=%v", tc.phone, errs, tc.ok)
		}
	}
}

func TestValidateZipCode(t *testing.T) {
	cases := []struct {
		zip string
		ok  bool
	}{
		{"", true},
		{"80521", true},
		{"805", false},
		{"80521-1234", false},
	}
	for _, tc := range cases {
		errs := []string{}
		ValidateZipCode(tc.zip, &errs)
		if (len(errs) == 0) != tc.ok {
			t.Fatalf("zip %q: got errs %v, want ok=%v", tc.zip, errs, tc.ok)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"", true},
		{"pat@example.com", true},
		{"pat.doe@mail.example.org", true},
		{"not-an-email", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		errs := []string{}
		ValidateEmail(tc.email, &errs)
		if (len(errs) == 0) != tc.ok {
			t.Fatalf("email %q: got errs %v, want ok=%v", tc.email, errs, tc.ok)
		}
	}
}

func TestValidatePassword2(t *testing.T) {
	errs := []string{}
	ValidatePassword2("abc", "abc", &errs)
	if len(errs) != 0 {
		t.Fatalf("matching passwords rejected: %v", errs)
	}

	errs = []string{}
	ValidatePassword2("abc", "", &errs)
	if len(errs) != 1 || errs[0] != "Please confirm password" {
		t.Fatalf("missing confirmation: got %v", errs)
	}

	errs = []string{}
	ValidatePassword2("abc", "abd", &errs)
	if len(errs) != 1 || errs[0] != "Passwords do not match" {
		t.Fatalf("mismatched passwords: got %v", errs)
	}
}

func TestValidateBasicFields(t *testing.T) {
	req := &UserFieldsRequest{
		FirstName: "Pat",
		LastName:  "Doe",
		Email:     "pat@example.com",
		UserName:  "pdoe",
		Password:  "pw",
		Password2: "pw",
		UserType:  "FamilyUser",
		County:    "Larimer",
	}
	if errs := ValidateBasicFields(req); len(errs) != 0 {
		t.Fatalf("complete form rejected: %v", errs)
	}

	empty := &UserFieldsRequest{}
	errs := ValidateBasicFields(empty)
	// 7 个必填字段 + 确认密码
	if len(errs) < 7 {
		t.Fatalf("empty form should accumulate all errors, got %v", errs)
	}
}

func TestValidateAdminBasicFieldsSkipsTypeAndCounty(t *testing.T) {
	req := &UserFieldsRequest{
		FirstName: "Pat",
		LastName:  "Doe",
		Email:     "pat@example.com",
		UserName:  "pdoe",
		Password:  "pw",
		Password2: "pw",
	}
	if errs := ValidateAdminBasicFields(req); len(errs) != 0 {
		t.Fatalf("admin form without userType/county rejected: %v", errs)
	}
}
