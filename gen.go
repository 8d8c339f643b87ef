package bitflags

import (
	"bytes"
	"fmt"
	"go/format"
	"regexp"
	"text/template"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Decl is a flaggen declaration file: the package, type name, underlying
// width and the flag table for one generated flag-set type.
//
//	package = "perm"
//	type = "Perm"
//	width = 32
//
//	[[flag]]
//	name = "Read"
//	bits = 0x1
//	doc = "grants read access"
type Decl struct {
	Package string     `toml:"package"`
	Type    string     `toml:"type"`
	Width   int        `toml:"width"`
	Flags   []DeclFlag `toml:"flag"`
}

type DeclFlag struct {
	Name string `toml:"name"`
	Bits uint64 `toml:"bits"`
	Doc  string `toml:"doc"`
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadDecl reads and validates a TOML declaration file.
func LoadDecl(path string) (*Decl, error) {
	var d Decl
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, errors.Wrap(err, "decode declaration file")
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Decl) validate() error {
	if !identRe.MatchString(d.Package) {
		return errors.Errorf("package %q is not a valid identifier", d.Package)
	}
	if !identRe.MatchString(d.Type) {
		return errors.Errorf("type %q is not a valid identifier", d.Type)
	}
	switch d.Width {
	case 8, 16, 32, 64:
	default:
		return errors.Errorf("width must be 8, 16, 32 or 64, got %d", d.Width)
	}
	if len(d.Flags) == 0 {
		return errors.New("declaration has no flags")
	}
	for _, f := range d.Flags {
		if !identRe.MatchString(f.Name) {
			return errors.Errorf("flag name %q is not a valid identifier", f.Name)
		}
	}
	// Run the table through the same construction path the generated code
	// will take, so width overflow and duplicate names fail here, not in
	// the consumer's build.
	var err error
	switch d.Width {
	case 8:
		_, err = defFor[uint8](d.Flags)
	case 16:
		_, err = defFor[uint16](d.Flags)
	case 32:
		_, err = defFor[uint32](d.Flags)
	case 64:
		_, err = defFor[uint64](d.Flags)
	}
	return err
}

func defFor[T Bits](flags []DeclFlag) (*Def[T], error) {
	table := make([]Flag[T], 0, len(flags))
	for _, f := range flags {
		b, err := safecast.Conv[T](f.Bits)
		if err != nil {
			return nil, errors.Wrapf(err, "flag %s does not fit the declared width", f.Name)
		}
		table = append(table, Flag[T]{Name: f.Name, Bits: b})
	}
	return NewDef(table...)
}

var genTmpl = template.Must(template.New("flags").Parse(`// Code generated by flaggen. DO NOT EDIT.

package {{.Package}}

import "bitflags"

// {{.Type}} is the underlying integer of the {{.Type}} flag set.
type {{.Type}} = uint{{.Width}}

const (
{{- range .Flags}}
{{- if .Doc}}
	// {{.Doc}}
{{- end}}
	{{$.Type}}{{.Name}} {{$.Type}} = {{.Hex}}
{{- end}}
)

// {{.Type}}Flags is the declaration table for {{.Type}} values.
var {{.Type}}Flags = bitflags.MustNewDef[{{.Type}}](
{{- range .Flags}}
	bitflags.Flag[{{$.Type}}]{Name: "{{.Name}}", Bits: {{$.Type}}{{.Name}}},
{{- end}}
)
`))

type genFlag struct {
	Name string
	Doc  string
	Hex  string
}

type genData struct {
	Package string
	Type    string
	Width   int
	Flags   []genFlag
}

// Generate renders the declaration as gofmt-formatted Go source.
func (d *Decl) Generate() ([]byte, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	data := genData{Package: d.Package, Type: d.Type, Width: d.Width}
	for _, f := range d.Flags {
		data.Flags = append(data.Flags, genFlag{
			Name: f.Name,
			Doc:  f.Doc,
			Hex:  fmt.Sprintf("%#x", f.Bits),
		})
	}
	var buf bytes.Buffer
	if err := genTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "render template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "format generated source")
	}
	return src, nil
}
