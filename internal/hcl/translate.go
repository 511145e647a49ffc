package hcl

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/tickgrid/internal/component"
	"github.com/vk/tickgrid/internal/config"
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/setup"
	"github.com/vk/tickgrid/internal/suggest"
	"github.com/vk/tickgrid/internal/units"
	"github.com/vk/tickgrid/internal/widget"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translator turns the blocks of one widget into a component tree. Variable
// references without an explicit format take the format of the fetch_data
// declaring them, which may appear anywhere in the widget.
type translator struct {
	formats map[string]data.Format
	pending []pendingVar
}

type pendingVar struct {
	v        *component.Variable
	explicit bool
}

func translateWidget(w *widgetSchema) (*config.WidgetDefinition, hcl.Diagnostics) {
	t := &translator{formats: make(map[string]data.Format)}
	def := &config.WidgetDefinition{Name: w.Name, Enabled: true}
	if w.Enabled != nil {
		def.Enabled = *w.Enabled
	}

	var diags hcl.Diagnostics
	if w.Position != nil {
		pos, posDiags := translatePosition(w.Position, blockRange(w.Remain, "position"))
		diags = append(diags, posDiags...)
		def.Position = pos
	}

	children, childDiags := t.children(w.Remain, []string{"enabled"}, "position")
	diags = append(diags, childDiags...)
	def.Root = wrap(children)

	for _, p := range t.pending {
		if p.explicit {
			continue
		}
		if f, ok := t.formats[p.v.Name]; ok {
			p.v.Format = f
		}
	}
	return def, diags
}

func translatePosition(p *positionSchema, rng hcl.Range) (widget.Position, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	anchor := func(name, align, offset string) widget.Anchor {
		var a widget.Anchor
		var err error
		if a.Align, err = units.ParseAlign(align); err != nil {
			diags = append(diags, diagError(rng, "Invalid position", fmt.Sprintf("%s: %s.", name, err)))
		}
		if offset != "" {
			if a.Offset, err = units.ParseLength(offset); err != nil {
				diags = append(diags, diagError(rng, "Invalid position", fmt.Sprintf("%s_offset: %s.", name, err)))
			}
		}
		return a
	}

	pos := widget.Position{
		X: anchor("x", p.X, p.XOffset),
		Y: anchor("y", p.Y, p.YOffset),
	}
	if p.Zoom != nil {
		if *p.Zoom <= 0 {
			diags = append(diags, diagError(rng, "Invalid position", "zoom must be greater than zero."))
		}
		pos.Zoom = *p.Zoom
	}
	return pos, diags
}

// children translates every component block of body in source order.
// Attributes other than attrs and blocks named in skip are rejected.
func (t *translator) children(body hcl.Body, attrs []string, skip ...string) ([]component.Component, hcl.Diagnostics) {
	sb, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil, hcl.Diagnostics{{Severity: hcl.DiagError, Summary: "Unsupported body", Detail: "Widget markup must be written in native HCL syntax."}}
	}

	var diags hcl.Diagnostics
	names := make([]string, 0, len(sb.Attributes))
	for name := range sb.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !slices.Contains(attrs, name) {
			diags = append(diags, diagError(sb.Attributes[name].NameRange, "Unsupported argument", fmt.Sprintf("An argument named %q is not expected here.", name)))
		}
	}

	var out []component.Component
	for _, blk := range sb.Blocks {
		if slices.Contains(skip, blk.Type) {
			continue
		}
		c, cDiags := t.component(blk)
		diags = append(diags, cDiags...)
		if c != nil {
			out = append(out, c)
		}
	}
	return out, diags
}

func (t *translator) component(blk *hclsyntax.Block) (component.Component, hcl.Diagnostics) {
	if !slices.Contains(componentBlocks, blk.Type) {
		detail := fmt.Sprintf("Blocks of type %q are not expected here.", blk.Type)
		if s := suggest.Closest(blk.Type, componentBlocks); len(s) > 0 {
			detail += fmt.Sprintf(" Did you mean %q?", s[0])
		}
		return nil, hcl.Diagnostics{diagError(blk.TypeRange, "Unsupported block type", detail)}
	}
	if len(blk.Labels) > 0 {
		return nil, hcl.Diagnostics{diagError(blk.LabelRanges[0], "Extraneous label", fmt.Sprintf("A %s block does not take labels.", blk.Type))}
	}

	rng := blk.DefRange()
	switch blk.Type {
	case blockText:
		return t.text(blk.Body, rng)
	case blockHBox:
		var s hboxSchema
		if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
			return nil, diags
		}
		align, err := units.ParseAlign(s.YAlign)
		if err != nil {
			return nil, hcl.Diagnostics{diagError(rng, "Invalid y_align", err.Error())}
		}
		children, diags := t.children(s.Remain, []string{"y_align"})
		return &component.HBox{YAlign: align, Children: children}, diags
	case blockVBox:
		var s vboxSchema
		if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
			return nil, diags
		}
		align, err := units.ParseAlign(s.XAlign)
		if err != nil {
			return nil, hcl.Diagnostics{diagError(rng, "Invalid x_align", err.Error())}
		}
		children, diags := t.children(s.Remain, []string{"x_align"})
		return &component.VBox{XAlign: align, Children: children}, diags
	case blockGroup:
		children, diags := t.children(blk.Body, nil)
		return &component.Group{Children: children}, diags
	case blockIf:
		return t.ifBlock(blk.Body, rng)
	case blockFetchData:
		return t.fetchData(blk.Body, rng)
	case blockGraph:
		return graph(blk.Body, rng)
	case blockImportFont:
		var s importFontSchema
		if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
			return nil, diags
		}
		return &component.ImportFont{URL: s.URL}, nil
	case blockMargin:
		var s marginSchema
		if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
			return nil, diags
		}
		size, err := units.ParseLength(s.Size)
		if err != nil {
			return nil, hcl.Diagnostics{diagError(rng, "Invalid margin size", err.Error())}
		}
		return &component.Margin{Size: size}, nil
	case blockSetPosition:
		var s setPositionSchema
		if diags := gohcl.DecodeBody(blk.Body, nil, &s); diags.HasErrors() {
			return nil, diags
		}
		to, err := units.ParseLength(s.To)
		if err != nil {
			return nil, hcl.Diagnostics{diagError(rng, "Invalid set_position", err.Error())}
		}
		return &component.SetPosition{To: to}, nil
	case blockOverlap:
		children, diags := t.children(blk.Body, nil)
		if len(children) == 0 && !diags.HasErrors() {
			diags = append(diags, diagError(rng, "Empty overlap", "An overlap block needs at least one component."))
		}
		return &component.Overlap{Child: wrap(children)}, diags
	}
	return nil, nil
}

func (t *translator) text(body hcl.Body, rng hcl.Range) (component.Component, hcl.Diagnostics) {
	var s textSchema
	if diags := gohcl.DecodeBody(body, nil, &s); diags.HasErrors() {
		return nil, diags
	}

	var diags hcl.Diagnostics
	txt := &component.Text{FontFamily: s.FontFamily, FontWeight: s.FontWeight}
	if s.Color != nil {
		c, err := units.ParseColor(*s.Color)
		if err != nil {
			diags = append(diags, diagError(rng, "Invalid color", err.Error()))
		}
		txt.Color = &c
	}
	if s.FontSize != nil {
		if *s.FontSize <= 0 {
			diags = append(diags, diagError(rng, "Invalid font_size", "font_size must be greater than zero."))
		}
		txt.FontSize = *s.FontSize
	}
	align, err := component.ParseTextAlign(s.TextAlign)
	if err != nil {
		diags = append(diags, diagError(rng, "Invalid text_align", err.Error()))
	}
	txt.Align = align

	vars := make(map[string]*variableSchema, len(s.Variables))
	for _, v := range s.Variables {
		vars[v.Name] = v
	}
	content, cDiags := t.content(s.Content, vars)
	diags = append(diags, cDiags...)
	txt.Content = content
	return txt, diags
}

// content splits a template expression into literal and variable fragments.
func (t *translator) content(expr hcl.Expression, vars map[string]*variableSchema) ([]component.Fragment, hcl.Diagnostics) {
	var parts []hcl.Expression
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		for _, p := range e.Parts {
			parts = append(parts, p)
		}
	case *hclsyntax.TemplateWrapExpr:
		parts = append(parts, e.Wrapped)
	default:
		parts = append(parts, expr)
	}

	var diags hcl.Diagnostics
	var out []component.Fragment
	for _, p := range parts {
		if name, ok := varName(p); ok {
			v, vDiags := t.variable(name, vars[name], p.Range())
			diags = append(diags, vDiags...)
			out = append(out, component.Ref(v))
			continue
		}
		val, vDiags := p.Value(nil)
		if vDiags.HasErrors() {
			diags = append(diags, vDiags...)
			continue
		}
		str, err := convert.Convert(val, cty.String)
		if err != nil || str.IsNull() || !str.IsKnown() {
			diags = append(diags, diagError(p.Range(), "Invalid text content", "Text content must be a string template."))
			continue
		}
		if s := str.AsString(); s != "" {
			out = append(out, component.Lit(s))
		}
	}
	return out, diags
}

func (t *translator) variable(name string, s *variableSchema, rng hcl.Range) (*component.Variable, hcl.Diagnostics) {
	v := component.NewVariable(name, data.FormatString)
	p := pendingVar{v: v}
	var diags hcl.Diagnostics
	if s != nil {
		if s.Format != "" {
			f, err := data.ParseFormat(s.Format)
			if err != nil {
				diags = append(diags, diagError(rng, "Invalid variable format", err.Error()))
			}
			v.Format = f
			p.explicit = true
		}
		if s.Precision != nil {
			if *s.Precision < 0 {
				diags = append(diags, diagError(rng, "Invalid variable precision", "precision must not be negative."))
			}
			v.Precision = *s.Precision
		}
		if s.DivideBy != nil {
			if *s.DivideBy == 0 {
				diags = append(diags, diagError(rng, "Invalid variable divide_by", "divide_by must not be zero."))
			}
			v.DivideBy = *s.DivideBy
		}
		v.Suffix = s.Suffix
	}
	t.pending = append(t.pending, p)
	return v, diags
}

func (t *translator) ifBlock(body hcl.Body, rng hcl.Range) (component.Component, hcl.Diagnostics) {
	var s ifSchema
	if diags := gohcl.DecodeBody(body, nil, &s); diags.HasErrors() {
		return nil, diags
	}
	if s.Then == nil {
		return nil, hcl.Diagnostics{diagError(rng, "Missing then block", "An if block needs a then block.")}
	}

	cond, diags := condition(s.Cond)
	thenChildren, thenDiags := t.children(s.Then.Remain, nil)
	diags = append(diags, thenDiags...)
	c := &component.If{Cond: cond, Then: wrap(thenChildren)}
	if s.Else != nil {
		elseChildren, elseDiags := t.children(s.Else.Remain, nil)
		diags = append(diags, elseDiags...)
		c.Else = wrap(elseChildren)
	}
	return c, diags
}

func (t *translator) fetchData(body hcl.Body, rng hcl.Range) (component.Component, hcl.Diagnostics) {
	var s fetchDataSchema
	if diags := gohcl.DecodeBody(body, nil, &s); diags.HasErrors() {
		return nil, diags
	}
	if s.Name == "" || s.Source == "" {
		return nil, hcl.Diagnostics{diagError(rng, "Invalid fetch_data", "name and source must not be empty.")}
	}
	format, err := data.ParseFormat(s.Format)
	if err != nil {
		return nil, hcl.Diagnostics{diagError(rng, "Invalid fetch_data format", err.Error())}
	}
	t.formats[s.Name] = format
	return &component.FetchData{Declaration: setup.Declaration{
		Name:   s.Name,
		Source: s.Source,
		Query:  s.Query,
		Format: format,
	}}, nil
}

func graph(body hcl.Body, rng hcl.Range) (component.Component, hcl.Diagnostics) {
	var s graphSchema
	if diags := gohcl.DecodeBody(body, nil, &s); diags.HasErrors() {
		return nil, diags
	}

	var diags hcl.Diagnostics
	invalid := func(attr string, err error) {
		diags = append(diags, diagError(rng, "Invalid graph "+attr, err.Error()))
	}

	g := &component.Graph{Name: s.Name, Min: s.Min, Max: s.Max, StrokeWidth: s.StrokeWidth}
	var err error
	if g.Width, err = units.ParseLength(s.Width); err != nil {
		invalid("width", err)
	}
	if g.Height, err = units.ParseLength(s.Height); err != nil {
		invalid("height", err)
	}
	if g.StrokeColor, err = units.ParseColor(s.StrokeColor); err != nil {
		invalid("stroke_color", err)
	}
	if s.FillColor != nil {
		c, err := units.ParseColor(*s.FillColor)
		if err != nil {
			invalid("fill_color", err)
		}
		g.FillColor = &c
	}
	if s.SampleCount != nil {
		if *s.SampleCount < 2 {
			invalid("sample_count", fmt.Errorf("sample_count must be at least 2, got %d", *s.SampleCount))
		}
		g.SampleCount = *s.SampleCount
	}
	if s.FillOpacity != nil {
		if *s.FillOpacity < 0 || *s.FillOpacity > 1 {
			invalid("fill_opacity", fmt.Errorf("fill_opacity must be within 0 and 1, got %g", *s.FillOpacity))
		}
		g.FillOpacity = s.FillOpacity
	}
	if s.Max <= s.Min {
		invalid("range", fmt.Errorf("max (%g) must be greater than min (%g)", s.Max, s.Min))
	}
	return g, diags
}

// condition reads an if condition: a var.<name> reference or a literal.
func condition(expr hcl.Expression) (component.Expr, hcl.Diagnostics) {
	if name, ok := varName(expr); ok {
		return component.Var(name), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return component.Expr{}, diags
	}
	d, err := data.FromCty(val)
	if err != nil {
		return component.Expr{}, hcl.Diagnostics{diagError(expr.Range(), "Invalid condition", err.Error())}
	}
	return component.Literal(d), nil
}

// varName reports the name of a var.<name> reference.
func varName(expr hcl.Expression) (string, bool) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 2 || traversal.RootName() != "var" {
		return "", false
	}
	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return "", false
	}
	return attr.Name, true
}

// blockRange returns the definition range of the first block of type typ in
// body, or the body range when there is none.
func blockRange(body hcl.Body, typ string) hcl.Range {
	sb, ok := body.(*hclsyntax.Body)
	if !ok {
		return hcl.Range{}
	}
	for _, blk := range sb.Blocks {
		if blk.Type == typ {
			return blk.DefRange()
		}
	}
	return sb.SrcRange
}

func wrap(children []component.Component) component.Component {
	if len(children) == 1 {
		return children[0]
	}
	return &component.Group{Children: children}
}
