package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milkweed-games/waypath/path"
)

const panelWidth = 220

// solidNineSlice returns a solid color nine-slice for widget backgrounds.
func solidNineSlice(c color.Color) *imageui.NineSlice {
	return imageui.NewNineSliceColor(c)
}

// PanelCallbacks wires the side panel widgets to the editor actions.
type PanelCallbacks struct {
	OnFieldChanged func(field, value string)
	OnPrevEntity   func()
	OnNextEntity   func()
	OnSnap         func()
	OnPlayPause    func()
	OnSave         func()
	OnGenerate     func(template string)
}

// Panel is the right-hand side panel: entity picker, the five kinematic
// fields of the selection and the action buttons.
type Panel struct {
	UI *ebitenui.UI

	entityLabel *widget.Text

	maxSpeedInput *widget.TextInput
	minSpeedInput *widget.TextInput
	accelInput    *widget.TextInput
	decelInput    *widget.TextInput
	standbyInput  *widget.TextInput

	suppress bool
}

func BuildPanel(callbacks PanelCallbacks) *Panel {
	source, err := ebtext.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("failed to load font: " + err.Error())
	}
	var fontFace ebtext.Face = &ebtext.GoTextFace{Source: source, Size: 14}

	panel := &Panel{}

	buttonImage := &widget.ButtonImage{
		Idle:    solidNineSlice(color.NRGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff}),
		Hover:   solidNineSlice(color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}),
		Pressed: solidNineSlice(color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}),
	}
	buttonTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}

	container := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, baseHeight),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
			),
		),
	)

	makeButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(label, &fontFace, buttonTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}

	// entity picker
	panel.entityLabel = widget.NewText(
		widget.TextOpts.Text("(no entity)", &fontFace, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
	)
	entityRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	entityRow.AddChild(makeButton("<", callbacks.OnPrevEntity))
	entityRow.AddChild(makeButton(">", callbacks.OnNextEntity))
	container.AddChild(panel.entityLabel)
	container.AddChild(entityRow)

	makeField := func(label, field string) *widget.TextInput {
		container.AddChild(widget.NewLabel(
			widget.LabelOpts.Text(label, &fontFace, labelColor),
		))
		input := widget.NewTextInput(
			widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(panelWidth-20, 26)),
			widget.TextInputOpts.Image(&widget.TextInputImage{
				Idle:     solidNineSlice(color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}),
				Disabled: solidNineSlice(color.NRGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}),
			}),
			widget.TextInputOpts.Color(&widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}),
			widget.TextInputOpts.Face(&fontFace),
			widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
				if panel.suppress {
					return
				}
				if callbacks.OnFieldChanged != nil {
					callbacks.OnFieldChanged(field, args.InputText)
				}
			}),
		)
		container.AddChild(input)
		return input
	}

	panel.maxSpeedInput = makeField("Max speed", "max_speed")
	panel.minSpeedInput = makeField("Min speed", "min_speed")
	panel.accelInput = makeField("Accel fraction", "accel")
	panel.decelInput = makeField("Decel fraction", "decel")
	panel.standbyInput = makeField("Standby time", "standby")

	container.AddChild(makeButton("Snap to grid", callbacks.OnSnap))
	container.AddChild(makeButton("Play / pause", callbacks.OnPlayPause))
	container.AddChild(makeButton("Save", callbacks.OnSave))
	container.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Generate", &fontFace, labelColor),
	))
	container.AddChild(makeButton("Circle path", func() {
		if callbacks.OnGenerate != nil {
			callbacks.OnGenerate("circle")
		}
	}))
	container.AddChild(makeButton("Zigzag path", func() {
		if callbacks.OnGenerate != nil {
			callbacks.OnGenerate("zigzag")
		}
	}))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	root.AddChild(container)

	panel.UI = &ebitenui.UI{Container: root}
	return panel
}

// SetEntity updates the entity picker label.
func (p *Panel) SetEntity(id string, hasPath bool) {
	label := "(no entity)"
	if id != "" {
		label = id
		if !hasPath {
			label += " (no path)"
		}
	}
	p.entityLabel.Label = label
}

// SetMovement fills the kinematic fields from the stacked values of the
// selection. Non-uniform or absent values show as empty fields.
func (p *Panel) SetMovement(overall path.OverallMovement) {
	p.suppress = true
	defer func() { p.suppress = false }()

	set := func(input *widget.TextInput, v path.OverallValue) {
		if value, uniform := v.Value(); uniform {
			input.SetText(fmt.Sprintf("%g", value))
			return
		}
		input.SetText("")
	}

	if !overall.IsSome() {
		for _, input := range []*widget.TextInput{p.maxSpeedInput, p.minSpeedInput, p.accelInput, p.decelInput, p.standbyInput} {
			input.SetText("")
		}
		return
	}

	set(p.maxSpeedInput, overall.MaxSpeed)
	set(p.minSpeedInput, overall.MinSpeed)
	set(p.accelInput, overall.AccelTravelPercentage)
	set(p.decelInput, overall.DecelTravelPercentage)
	set(p.standbyInput, overall.StandbyTime)
}
