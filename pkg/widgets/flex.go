package widgets

import (
	"fmt"
	"math"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/key"
	"github.com/go-drift/weft/pkg/layout"
)

// Axis is the direction children are laid out in.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MainAxisAlignment positions children along the main axis.
type MainAxisAlignment int

const (
	MainAxisAlignmentStart MainAxisAlignment = iota
	MainAxisAlignmentEnd
	MainAxisAlignmentCenter
	MainAxisAlignmentSpaceBetween
	MainAxisAlignmentSpaceAround
	MainAxisAlignmentSpaceEvenly
)

func (a MainAxisAlignment) String() string {
	switch a {
	case MainAxisAlignmentStart:
		return "start"
	case MainAxisAlignmentEnd:
		return "end"
	case MainAxisAlignmentCenter:
		return "center"
	case MainAxisAlignmentSpaceBetween:
		return "space_between"
	case MainAxisAlignmentSpaceAround:
		return "space_around"
	case MainAxisAlignmentSpaceEvenly:
		return "space_evenly"
	default:
		return fmt.Sprintf("MainAxisAlignment(%d)", int(a))
	}
}

// CrossAxisAlignment positions children across the main axis.
type CrossAxisAlignment int

const (
	CrossAxisAlignmentStart CrossAxisAlignment = iota
	CrossAxisAlignmentEnd
	CrossAxisAlignmentCenter
	CrossAxisAlignmentStretch
)

func (a CrossAxisAlignment) String() string {
	switch a {
	case CrossAxisAlignmentStart:
		return "start"
	case CrossAxisAlignmentEnd:
		return "end"
	case CrossAxisAlignmentCenter:
		return "center"
	case CrossAxisAlignmentStretch:
		return "stretch"
	default:
		return fmt.Sprintf("CrossAxisAlignment(%d)", int(a))
	}
}

// MainAxisSize decides whether a flex shrinks to its children or fills the
// main axis.
type MainAxisSize int

const (
	MainAxisSizeMin MainAxisSize = iota
	MainAxisSizeMax
)

// FlexFactor is implemented by render objects that share the free main-axis
// space of their flex parent.
type FlexFactor interface {
	FlexFactor() int
}

// FlexProps configures a [Row] or [Column].
type FlexProps struct {
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
	// Spacing is the gap between adjacent children.
	Spacing float64
	Key     any
}

// Row lays its children out horizontally.
func Row(cx *core.Cx, props FlexProps, content func(cx *core.Cx)) {
	buildFlex(cx, callerPos(props.Key), AxisHorizontal, props, content)
}

// Column lays its children out vertically.
func Column(cx *core.Cx, props FlexProps, content func(cx *core.Cx)) {
	buildFlex(cx, callerPos(props.Key), AxisVertical, props, content)
}

type flexProps struct {
	FlexProps
	direction Axis
}

func buildFlex(cx *core.Cx, pos key.Position, direction Axis, props FlexProps, content func(cx *core.Cx)) {
	core.Build(cx, pos, flexProps{FlexProps: props, direction: direction}, func(p flexProps) *flexObject {
		return &flexObject{props: p}
	}, content)
}

type flexObject struct {
	passive
	props flexProps
}

func (f *flexObject) Update(ctx *core.UpdateCtx, props flexProps) {
	if props != f.props {
		f.props = props
		ctx.RequestLayout()
	}
}

func (f *flexObject) mainAxis(size graphics.Size) float64 {
	if f.props.direction == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

func (f *flexObject) crossAxis(size graphics.Size) float64 {
	if f.props.direction == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

func (f *flexObject) makeSize(main, cross float64) graphics.Size {
	if f.props.direction == AxisHorizontal {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

func (f *flexObject) makeOffset(main, cross float64) graphics.Offset {
	if f.props.direction == AxisHorizontal {
		return graphics.Offset{X: main, Y: cross}
	}
	return graphics.Offset{X: cross, Y: main}
}

func flexFactor(child *core.Child) int {
	if f, ok := child.Object().(FlexFactor); ok {
		return f.FlexFactor()
	}
	return 0
}

func (f *flexObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	maxSize := bc.MaxSize()
	maxMain := f.mainAxis(maxSize)
	bounded := !math.IsInf(maxMain, 1)

	n := children.Len()
	gaps := 0.0
	if n > 1 {
		gaps = f.props.Spacing * float64(n-1)
	}

	mainSize := gaps
	crossSize := 0.0
	totalFlex := 0
	for _, child := range children.All() {
		if flex := flexFactor(child); flex > 0 && bounded {
			totalFlex += flex
			continue
		}
		size := child.Layout(ctx, f.looseConstraints(maxSize))
		mainSize += f.mainAxis(size)
		crossSize = math.Max(crossSize, f.crossAxis(size))
	}

	if totalFlex > 0 {
		remaining := math.Max(maxMain-mainSize, 0)
		for _, child := range children.All() {
			flex := flexFactor(child)
			if flex == 0 {
				continue
			}
			allocated := remaining * float64(flex) / float64(totalFlex)
			size := child.Layout(ctx, f.flexConstraints(bc, allocated))
			mainSize += f.mainAxis(size)
			crossSize = math.Max(crossSize, f.crossAxis(size))
		}
	}

	finalMain := mainSize
	if f.props.MainAxisSize == MainAxisSizeMax && bounded {
		finalMain = maxMain
	}
	if f.props.CrossAxisAlignment == CrossAxisAlignmentStretch && !math.IsInf(f.crossAxis(maxSize), 1) {
		crossSize = f.crossAxis(maxSize)
	}
	size := bc.Constrain(f.makeSize(finalMain, crossSize))

	freeSpace := math.Max(0, f.mainAxis(size)-mainSize)
	spacing, cursor := f.computeSpacing(freeSpace, n)
	for _, child := range children.All() {
		cross := f.crossAxisOffset(size, child.Size())
		child.SetOrigin(ctx, f.makeOffset(cursor, cross))
		cursor += f.mainAxis(child.Size()) + spacing + f.props.Spacing
	}
	return size
}

func (f *flexObject) looseConstraints(maxSize graphics.Size) layout.Constraints {
	bc := layout.Loose(maxSize)
	if f.props.CrossAxisAlignment != CrossAxisAlignmentStretch {
		return bc
	}
	if f.props.direction == AxisHorizontal {
		bc.MinHeight = maxSize.Height
	} else {
		bc.MinWidth = maxSize.Width
	}
	return bc
}

func (f *flexObject) flexConstraints(bc layout.Constraints, main float64) layout.Constraints {
	stretch := f.props.CrossAxisAlignment == CrossAxisAlignmentStretch
	if f.props.direction == AxisHorizontal {
		out := layout.Constraints{MinWidth: main, MaxWidth: main, MaxHeight: bc.MaxHeight}
		if stretch {
			out.MinHeight = bc.MaxHeight
		}
		return out
	}
	out := layout.Constraints{MinHeight: main, MaxHeight: main, MaxWidth: bc.MaxWidth}
	if stretch {
		out.MinWidth = bc.MaxWidth
	}
	return out
}

func (f *flexObject) crossAxisOffset(size, childSize graphics.Size) float64 {
	free := f.crossAxis(size) - f.crossAxis(childSize)
	if free <= 0 {
		return 0
	}
	switch f.props.CrossAxisAlignment {
	case CrossAxisAlignmentEnd:
		return free
	case CrossAxisAlignmentCenter:
		return free * 0.5
	default:
		return 0
	}
}

func (f *flexObject) computeSpacing(freeSpace float64, n int) (spacing, offset float64) {
	switch f.props.MainAxisAlignment {
	case MainAxisAlignmentEnd:
		offset = freeSpace
	case MainAxisAlignmentCenter:
		offset = freeSpace * 0.5
	case MainAxisAlignmentSpaceBetween:
		if n > 1 {
			spacing = freeSpace / float64(n-1)
		}
	case MainAxisAlignmentSpaceAround:
		if n > 0 {
			spacing = freeSpace / float64(n)
			offset = spacing * 0.5
		}
	case MainAxisAlignmentSpaceEvenly:
		if n > 0 {
			spacing = freeSpace / float64(n+1)
			offset = spacing
		}
	}
	return
}

func (f *flexObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	children.Paint(ctx)
}

func (f *flexObject) Describe() string { return f.props.direction.String() }

// ExpandedProps configures an [Expanded].
type ExpandedProps struct {
	// Flex is the share of free space; values below 1 count as 1.
	Flex int
	Key  any
}

// Expanded makes its children fill a share of the free main-axis space of
// the enclosing [Row] or [Column].
func Expanded(cx *core.Cx, props ExpandedProps, content func(cx *core.Cx)) {
	core.Build(cx, callerPos(props.Key), props, func(p ExpandedProps) *expandedObject {
		return &expandedObject{flex: max(p.Flex, 1)}
	}, content)
}

type expandedObject struct {
	passive
	flex int
}

func (e *expandedObject) FlexFactor() int { return e.flex }

func (e *expandedObject) Update(ctx *core.UpdateCtx, props ExpandedProps) {
	if flex := max(props.Flex, 1); flex != e.flex {
		e.flex = flex
		ctx.RequestLayout()
	}
}

func (e *expandedObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	size := layoutStacked(ctx, bc, children, graphics.Offset{})
	return bc.Constrain(size)
}

func (e *expandedObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	children.Paint(ctx)
}
