package compiler

import (
	"strings"

	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/options"
)

const (
	patternHead   = "PATTERN"
	atFieldHead   = ".&"
	optionalToken = "optional"
)

func (b *Builder) typeOptions(typeName string, raw jas.OptionList, r diag.Reporter) options.Map {
	opts := options.Map{}
	for _, o := range raw {
		switch v := o.(type) {
		case jas.PairOption:
			if v.Head == patternHead {
				opts[options.Pattern] = v.Arg()
				continue
			}
			r.Report(unrecognized("type", typeName, "", v.Head))
		case jas.BareOption:
			// TODO: reject aetype on types other than ArrayOf once the grammar
			// distinguishes element types from other bare words.
			opts[options.AEType] = b.opts.TypeNames.Canonical(v.Name)
		case jas.UnknownOption:
			r.Report(unrecognized("type", typeName, "", v.String()))
		}
	}
	return opts
}

func fieldOptions(typeName, fieldName string, raw jas.OptionList, r diag.Reporter) options.Map {
	opts := options.Map{}
	for _, o := range raw {
		switch v := o.(type) {
		case jas.BareOption:
			if strings.EqualFold(v.Name, optionalToken) {
				opts[options.Optional] = true
				continue
			}
			r.Report(unrecognized("field", typeName, fieldName, v.Name))
		case jas.PairOption:
			if v.Head == atFieldHead {
				opts[options.ATField] = v.Arg()
				continue
			}
			r.Report(unrecognized("field", typeName, fieldName, v.Head))
		case jas.UnknownOption:
			r.Report(unrecognized("field", typeName, fieldName, v.String()))
		}
	}
	return opts
}

func unrecognized(context, typeName, fieldName, value string) diag.Diagnostic {
	return diag.Warning(diag.KindUnrecognizedOption, "unknown %s option", context).
		At(typeName, fieldName).
		WithValue(value)
}

func (b *Builder) encode(table *options.Table, opts options.Map, r diag.Reporter) ([]string, error) {
	if b.opts.Encoding == EncodingCanonical {
		return table.Format(opts, r)
	}
	return options.Encode(opts, r), nil
}
