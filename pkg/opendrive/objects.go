package opendrive

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
)

// roadPosition carries the placement attributes Object and Signal share.
type roadPosition struct {
	s           float64
	t           float64
	id          int
	idAssigned  bool
	subtype     string
	dynamic     Dynamic
	name        string
	zOffset     float64
	orientation Orientation
	pitch       float64
	roll        float64
}

func (rp *roadPosition) writeCommonAttributes(element *etree.Element, objType string) {
	element.CreateAttr("id", strconv.Itoa(rp.id))
	element.CreateAttr("s", util.FloatString(rp.s))
	element.CreateAttr("t", util.FloatString(rp.t))
	element.CreateAttr("subtype", rp.subtype)
	element.CreateAttr("dynamic", string(rp.dynamic))
	element.CreateAttr("zOffset", util.FloatString(rp.zOffset))
	element.CreateAttr("pitch", util.FloatString(rp.pitch))
	element.CreateAttr("roll", util.FloatString(rp.roll))
	if rp.name != "" {
		element.CreateAttr("name", rp.name)
	}
	element.CreateAttr("type", objType)
	element.CreateAttr("orientation", string(rp.orientation))
}

// Validity restricts an object or signal to a lane range.
type Validity struct {
	fromLane int
	toLane   int
}

func (v *Validity) element() *etree.Element {
	element := etree.NewElement("validity")
	element.CreateAttr("fromLane", strconv.Itoa(v.fromLane))
	element.CreateAttr("toLane", strconv.Itoa(v.toLane))
	return element
}

// repeatRecord is one <repeat> entry, attributes resolved when the record
// is created.
type repeatAttr struct {
	key   string
	value string
}

// Object is a static road object placed along the reference line.
type Object struct {
	roadPosition
	objectType ObjectType
	hdg        float64
	width      float64
	length     float64
	height     float64
	radius     float64
	hasExtent  bool
	hasRadius  bool
	hasHeight  bool
	repeats    [][]repeatAttr
	validity   *Validity
}

func NewObject(s, t float64, objectType ObjectType) *Object {
	return &Object{
		roadPosition: roadPosition{
			s:           s,
			t:           t,
			dynamic:     DynamicNo,
			orientation: OrientationNone,
		},
		objectType: objectType,
	}
}

func (o *Object) SetID(id int) *Object {
	o.id = id
	o.idAssigned = true
	return o
}

func (o *Object) SetName(name string) *Object {
	o.name = name
	return o
}

func (o *Object) SetZOffset(zOffset float64) *Object {
	o.zOffset = zOffset
	return o
}

func (o *Object) SetHeading(hdg float64) *Object {
	o.hdg = hdg
	return o
}

func (o *Object) SetPitchRoll(pitch, roll float64) *Object {
	o.pitch = pitch
	o.roll = roll
	return o
}

func (o *Object) SetOrientation(orientation Orientation) *Object {
	o.orientation = orientation
	return o
}

// SetDimensions gives the object a box extent. Not to be combined with
// SetRadius.
func (o *Object) SetDimensions(length, width, height float64) *Object {
	o.length = length
	o.width = width
	o.height = height
	o.hasExtent = true
	o.hasHeight = true
	return o
}

// SetRadius gives the object a cylindrical extent. Not to be combined
// with SetDimensions.
func (o *Object) SetRadius(radius, height float64) *Object {
	o.radius = radius
	o.height = height
	o.hasRadius = true
	o.hasHeight = true
	return o
}

func (o *Object) AddValidity(fromLane, toLane int) *Object {
	o.validity = &Validity{fromLane: fromLane, toLane: toLane}
	return o
}

// clone copies the object without its repeats, used when one prototype is
// placed on both road sides.
func (o *Object) clone() *Object {
	cp := *o
	cp.repeats = nil
	cp.idAssigned = false
	return &cp
}

// RepeatSpec describes one <repeat> record. Optional fields follow the
// object itself when left nil.
type RepeatSpec struct {
	Length      float64
	Distance    float64
	S           float64
	TStart      float64
	TEnd        float64
	WidthStart  *float64
	WidthEnd    *float64
	LengthStart *float64
	LengthEnd   *float64
	RadiusStart *float64
	RadiusEnd   *float64
}

// AddRepeat places the object repeatedly along the road. Heights and z
// offsets are inherited from the object.
func (o *Object) AddRepeat(spec RepeatSpec) *Object {
	attrs := []repeatAttr{
		{"length", util.FloatString(spec.Length)},
		{"distance", util.FloatString(spec.Distance)},
		{"s", util.FloatString(spec.S)},
		{"tStart", util.FloatString(spec.TStart)},
		{"tEnd", util.FloatString(spec.TEnd)},
	}
	if o.hasHeight {
		attrs = append(attrs,
			repeatAttr{"heightStart", util.FloatString(o.height)},
			repeatAttr{"heightEnd", util.FloatString(o.height)})
	}
	attrs = append(attrs,
		repeatAttr{"zOffsetStart", util.FloatString(o.zOffset)},
		repeatAttr{"zOffsetEnd", util.FloatString(o.zOffset)})
	optional := []struct {
		key string
		val *float64
	}{
		{"widthStart", spec.WidthStart},
		{"widthEnd", spec.WidthEnd},
		{"lengthStart", spec.LengthStart},
		{"lengthEnd", spec.LengthEnd},
		{"radiusStart", spec.RadiusStart},
		{"radiusEnd", spec.RadiusEnd},
	}
	for _, opt := range optional {
		if opt.val != nil {
			attrs = append(attrs, repeatAttr{opt.key, util.FloatString(*opt.val)})
		}
	}
	o.repeats = append(o.repeats, attrs)
	return o
}

func (o *Object) Element() *etree.Element {
	element := etree.NewElement("object")
	o.writeCommonAttributes(element, string(o.objectType))
	element.CreateAttr("hdg", util.FloatString(o.hdg))
	if o.hasRadius {
		element.CreateAttr("radius", util.FloatString(o.radius))
	} else if o.hasExtent {
		element.CreateAttr("length", util.FloatString(o.length))
		element.CreateAttr("width", util.FloatString(o.width))
	}
	if o.hasHeight {
		element.CreateAttr("height", util.FloatString(o.height))
	}
	for _, attrs := range o.repeats {
		repeat := element.CreateElement("repeat")
		for _, a := range attrs {
			repeat.CreateAttr(a.key, a.value)
		}
	}
	if o.validity != nil {
		element.AddChild(o.validity.element())
	}
	return element
}

// Signal is a road sign or traffic light placed along the reference
// line.
type Signal struct {
	roadPosition
	country         string
	countryRevision string
	signalType      string
	value           float64
	unit            string
	hasValue        bool
	hOffset         float64
	height          float64
	width           float64
	hasExtent       bool
	validity        *Validity
}

func NewSignal(s, t float64, country, signalType string) *Signal {
	return &Signal{
		roadPosition: roadPosition{
			s:           s,
			t:           t,
			subtype:     "-1",
			dynamic:     DynamicNo,
			zOffset:     1.5,
			orientation: OrientationPositive,
		},
		country:    country,
		signalType: signalType,
	}
}

func (sig *Signal) SetID(id int) *Signal {
	sig.id = id
	sig.idAssigned = true
	return sig
}

func (sig *Signal) SetName(name string) *Signal {
	sig.name = name
	return sig
}

func (sig *Signal) SetSubtype(subtype string) *Signal {
	sig.subtype = subtype
	return sig
}

func (sig *Signal) SetDynamic(dynamic Dynamic) *Signal {
	sig.dynamic = dynamic
	return sig
}

func (sig *Signal) SetOrientation(orientation Orientation) *Signal {
	sig.orientation = orientation
	return sig
}

func (sig *Signal) SetZOffset(zOffset float64) *Signal {
	sig.zOffset = zOffset
	return sig
}

func (sig *Signal) SetHOffset(hOffset float64) *Signal {
	sig.hOffset = hOffset
	return sig
}

// SetValue attaches a value with its unit, for speed signs and the like.
func (sig *Signal) SetValue(value float64, unit string) *Signal {
	sig.value = value
	sig.unit = unit
	sig.hasValue = true
	return sig
}

func (sig *Signal) SetDimensions(width, height float64) *Signal {
	sig.width = width
	sig.height = height
	sig.hasExtent = true
	return sig
}

func (sig *Signal) AddValidity(fromLane, toLane int) *Signal {
	sig.validity = &Validity{fromLane: fromLane, toLane: toLane}
	return sig
}

func (sig *Signal) Element() *etree.Element {
	element := etree.NewElement("signal")
	sig.writeCommonAttributes(element, sig.signalType)
	if sig.hasExtent {
		element.CreateAttr("width", util.FloatString(sig.width))
		element.CreateAttr("height", util.FloatString(sig.height))
	}
	element.CreateAttr("country", strings.ToUpper(sig.country))
	if sig.countryRevision != "" {
		element.CreateAttr("countryRevision", sig.countryRevision)
	}
	element.CreateAttr("hOffset", util.FloatString(sig.hOffset))
	if sig.hasValue {
		element.CreateAttr("value", util.FloatString(sig.value))
		element.CreateAttr("unit", sig.unit)
	}
	if sig.validity != nil {
		element.AddChild(sig.validity.element())
	}
	return element
}
