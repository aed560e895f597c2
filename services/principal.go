package services

import "strconv"

// PrincipalKind แยกชนิด descriptor ที่ชั้น auth ส่งเข้ามา
type PrincipalKind int

const (
	PrincipalOIDC PrincipalKind = iota + 1 // id_token ที่ verify แล้ว (Google)
	PrincipalOAuth2                        // attribute map จาก provider ทั่วไป (GitHub)
	PrincipalForm                          // username/email จากฟอร์ม login
	PrincipalBare                          // identifier เปล่า ๆ
)

// Principal คือ descriptor ของผู้ใช้ที่ยืนยันตัวตนแล้ว ใช้ฟิลด์ตาม Kind:
// OIDC ใช้กลุ่ม Email..Subject, OAuth2 ใช้ Attributes, Form/Bare ใช้ Identifier
type Principal struct {
	Kind PrincipalKind

	Email      string
	GivenName  string
	FamilyName string
	FullName   string
	Subject    string
	Provider   string // models.ProviderGoogle | models.ProviderGitHub

	Attributes map[string]any

	Identifier string
}

// OIDCPrincipal สร้าง descriptor จาก claims ของ id_token
func OIDCPrincipal(provider, email, givenName, familyName, fullName, subject string) Principal {
	return Principal{
		Kind:       PrincipalOIDC,
		Provider:   provider,
		Email:      email,
		GivenName:  givenName,
		FamilyName: familyName,
		FullName:   fullName,
		Subject:    subject,
	}
}

// OAuth2Principal สร้าง descriptor จาก attribute map ของ provider
func OAuth2Principal(provider string, attrs map[string]any) Principal {
	return Principal{Kind: PrincipalOAuth2, Provider: provider, Attributes: attrs}
}

// FormPrincipal สำหรับ login ด้วย username หรือ email
func FormPrincipal(usernameOrEmail string) Principal {
	return Principal{Kind: PrincipalForm, Identifier: usernameOrEmail}
}

// BarePrincipal สำหรับ identifier ดิบ (ใช้ภายใน/งาน batch)
func BarePrincipal(identifier string) Principal {
	return Principal{Kind: PrincipalBare, Identifier: identifier}
}

// normalizeOAuth2 ดึงฟิลด์มาตรฐานออกจาก attribute map —
// Google ใช้ "sub", GitHub ใช้ "id"/"login"
func (p Principal) normalizeOAuth2() Principal {
	out := Principal{Kind: PrincipalOIDC, Provider: p.Provider}
	out.Email = attrString(p.Attributes, "email")
	out.GivenName = attrString(p.Attributes, "given_name")
	out.FamilyName = attrString(p.Attributes, "family_name")
	out.FullName = attrString(p.Attributes, "name")
	if out.FullName == "" {
		out.FullName = attrString(p.Attributes, "login")
	}
	if sub := attrString(p.Attributes, "sub"); sub != "" {
		out.Subject = sub
	} else {
		out.Subject = attrString(p.Attributes, "id")
	}
	return out
}

func attrString(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	switch v := attrs[key].(type) {
	case string:
		return v
	case float64: // ตัวเลขจาก JSON (เช่น GitHub id)
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
