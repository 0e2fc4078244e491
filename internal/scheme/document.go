package scheme

import (
	"gopkg.in/yaml.v3"
)

// BaseCount is the number of colours in a base16 palette.
const BaseCount = 16

// Document is the on-disk shape of a scheme file.
type Document struct {
	Scheme string `yaml:"scheme" validate:"required"`
	Author string `yaml:"author"`

	Base00 string `yaml:"base00" validate:"required,base16hex"`
	Base01 string `yaml:"base01" validate:"required,base16hex"`
	Base02 string `yaml:"base02" validate:"required,base16hex"`
	Base03 string `yaml:"base03" validate:"required,base16hex"`
	Base04 string `yaml:"base04" validate:"required,base16hex"`
	Base05 string `yaml:"base05" validate:"required,base16hex"`
	Base06 string `yaml:"base06" validate:"required,base16hex"`
	Base07 string `yaml:"base07" validate:"required,base16hex"`
	Base08 string `yaml:"base08" validate:"required,base16hex"`
	Base09 string `yaml:"base09" validate:"required,base16hex"`
	Base0A string `yaml:"base0A" validate:"required,base16hex"`
	Base0B string `yaml:"base0B" validate:"required,base16hex"`
	Base0C string `yaml:"base0C" validate:"required,base16hex"`
	Base0D string `yaml:"base0D" validate:"required,base16hex"`
	Base0E string `yaml:"base0E" validate:"required,base16hex"`
	Base0F string `yaml:"base0F" validate:"required,base16hex"`
}

// Bases returns the sixteen base colours in index order.
func (d Document) Bases() [BaseCount]string {
	return [BaseCount]string{
		d.Base00, d.Base01, d.Base02, d.Base03,
		d.Base04, d.Base05, d.Base06, d.Base07,
		d.Base08, d.Base09, d.Base0A, d.Base0B,
		d.Base0C, d.Base0D, d.Base0E, d.Base0F,
	}
}

// DecodeDocument parses a scheme document.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
