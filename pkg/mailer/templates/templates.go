package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

var tmpls = htmpl.Must(htmpl.ParseFS(FS, "*.tmpl"))

// RenderHTML renders the named template with the given data.
func RenderHTML(name string, data map[string]any) (string, error) {
	t := tmpls.Lookup(name + ".tmpl")
	if t == nil {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OTPData builds the data map for the "otp" template.
func OTPData(name, code, purposeLabel string, expiryMinutes int) map[string]any {
	return map[string]any{
		"Name":          name,
		"Code":          code,
		"Purpose":       purposeLabel,
		"ExpiryMinutes": expiryMinutes,
	}
}
