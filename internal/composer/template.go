package composer

import (
	"strings"
	"text/template"
)

// The @class forward declarations precede the #if TARGET_INTERFACE_BUILDER
// guard and must stay outside it.
const fileTemplate = `{{define "interface"}}@interface {{.NativeName}} : {{.SuperName}}{{if .Protocols}} <{{join .Protocols ", "}}>{{end}}
{{range .Members}}{{.}}
{{end}}@end

{{end}}{{.Banner}}

{{range .Forward}}@class {{.}};
{{end}}{{if .Forward}}
{{end}}#if TARGET_INTERFACE_BUILDER

{{range .Imports}}@import {{.}};
{{end}}{{if .Imports}}
{{end}}{{range .AdditionalCode}}{{.}}
{{end}}{{if .AdditionalCode}}
{{end}}{{range .Interfaces}}{{template "interface" .}}{{end}}#endif
`

var outputTemplate = template.Must(template.New("output").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(fileTemplate))

type fileData struct {
	Banner         string
	Forward        []string
	Imports        []string
	AdditionalCode []string
	Interfaces     []Interface
}
