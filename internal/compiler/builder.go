package compiler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/options"
	"github.com/goliatone/go-jadn/pkg/schema"
)

// Builder compiles JAS syntax trees into canonical JADN schemas.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Reporter != nil {
		opts.Reporter = options.Reporter
	}
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	if options.Concurrency > 0 {
		opts.Concurrency = options.Concurrency
	}
	if options.TypeNames != nil {
		opts.TypeNames = options.TypeNames
	}
	opts.Strict = options.Strict
	opts.Encoding = options.Encoding
	return &Builder{opts: opts}
}

// Compile builds the schema for tree. Types are compiled independently and
// reassembled in source order. Any fatal failure, in the metadata or in any
// type, fails the whole call; the returned error lists every failure.
func (b *Builder) Compile(ctx context.Context, tree jas.AST) (schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return schema.Schema{}, err
	}

	var result *multierror.Error
	meta, metaErrs := compileMeta(tree.Metas)
	for _, err := range metaErrs {
		result = multierror.Append(result, err)
	}

	types := make([]schema.TypeDefinition, len(tree.Types))
	typeErrs := make([]error, len(tree.Types))
	reports := make([]*diag.Collector, len(tree.Types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)
	for i := range tree.Types {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := diag.NewCollector()
			reports[i] = local
			types[i], typeErrs[i] = b.compileType(tree.Types[i], local)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return schema.Schema{}, err
	}

	for i, local := range reports {
		local.Forward(b.opts.Reporter)
		if typeErrs[i] != nil {
			result = multierror.Append(result, typeErrs[i])
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return schema.Schema{}, fmt.Errorf("jadn compiler: %w", err)
	}

	b.opts.Logger.Debug("compiled schema",
		zap.Int("types", len(types)),
		zap.Int("meta", len(meta)),
	)
	return schema.Schema{Meta: meta, Types: types}, nil
}

// CompileType compiles a single type node.
func (b *Builder) CompileType(node jas.TypeNode) (schema.TypeDefinition, error) {
	local := diag.NewCollector()
	td, err := b.compileType(node, local)
	local.Forward(b.opts.Reporter)
	return td, err
}

func (b *Builder) compileType(node jas.TypeNode, r *diag.Collector) (schema.TypeDefinition, error) {
	base := schema.BaseType(b.opts.TypeNames.Canonical(node.Type))
	encoded, err := b.encode(options.TypeTable, b.typeOptions(node.Name, node.TOpts, r), r)
	if err != nil {
		return schema.TypeDefinition{}, typeError(err, node.Name)
	}

	td := schema.TypeDefinition{
		Name:        node.Name,
		BaseType:    base,
		Options:     encoded,
		Description: node.TD1,
	}
	if node.F != nil && node.F.TD2 != "" {
		td.Description = node.F.TD2
	}

	if base.IsStructure() {
		td.Fields, err = b.compileFields(node, base, r)
		if err != nil {
			return schema.TypeDefinition{}, err
		}
	} else if node.F != nil && len(node.F.Fields) > 0 {
		r.Report(diag.Warning(diag.KindIgnoredFields,
			"%d field(s) ignored on non-structure type %s", len(node.F.Fields), base).At(node.Name, ""))
	}

	if b.opts.Strict {
		if found := r.Diagnostics(); len(found) > 0 {
			return schema.TypeDefinition{}, diag.Escalate(found[0]).WithType(node.Name)
		}
	}

	b.opts.Logger.Debug("compiled type",
		zap.String("name", td.Name),
		zap.String("base", string(td.BaseType)),
		zap.Int("fields", len(td.Fields)),
	)
	return td, nil
}

func (b *Builder) compileFields(node jas.TypeNode, base schema.BaseType, r diag.Reporter) ([]schema.FieldDefinition, error) {
	fields := make([]schema.FieldDefinition, 0)
	if node.F == nil {
		return fields, nil
	}
	nodes := node.F.Fields
	seen := make(map[int]string, len(nodes))

	for n, f := range nodes {
		// Comment text after a field is attached by the parser to the next
		// field's leading slot, so it belongs to field n.
		desc := f.FD2
		if n+1 < len(nodes) {
			desc = nodes[n+1].FD1
		}

		var tag int
		switch {
		case base.PositionalTags():
			tag = n + 1
		case f.Tag == nil:
			r.Report(diag.Warning(diag.KindMissingRequiredTag, "missing tag").At(node.Name, f.Name))
			continue
		default:
			parsed, err := strconv.Atoi(strings.TrimSpace(string(*f.Tag)))
			if err != nil {
				return nil, diag.NewError(diag.KindInvalidTag, "tag %q is not an integer", string(*f.Tag)).
					WithType(node.Name).WithField(f.Name).WithCause(err)
			}
			tag = parsed
		}
		if other, dup := seen[tag]; dup {
			return nil, diag.NewError(diag.KindDuplicateTag, "tag %d already used by field %s", tag, other).
				WithType(node.Name).WithField(f.Name)
		}
		seen[tag] = f.Name

		if base == schema.Enumerated {
			fields = append(fields, schema.FieldDefinition{Tag: tag, Name: f.Name, Description: desc})
			continue
		}

		encoded, err := b.encode(options.FieldTable, fieldOptions(node.Name, f.Name, f.FOpts, r), r)
		if err != nil {
			return nil, typeError(err, node.Name)
		}
		fields = append(fields, schema.FieldDefinition{
			Tag:         tag,
			Name:        f.Name,
			Type:        b.opts.TypeNames.Canonical(f.Type),
			Options:     encoded,
			Description: desc,
		})
	}
	return fields, nil
}

func typeError(err error, typeName string) error {
	if e, ok := err.(*diag.Error); ok {
		return e.WithType(typeName)
	}
	return fmt.Errorf("type %s: %w", typeName, err)
}
