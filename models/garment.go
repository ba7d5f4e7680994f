package models

// GarmentType is one of the fixed garment kinds an order item can be.
type GarmentType string

const (
	GarmentBlouse       GarmentType = "blouse"
	GarmentSalwarKameez GarmentType = "salwar_kameez"
	GarmentLehenga      GarmentType = "lehenga"
	GarmentGown         GarmentType = "gown"
	GarmentDress        GarmentType = "dress"
	GarmentSkirt        GarmentType = "skirt"
	GarmentTop          GarmentType = "top"
	GarmentOther        GarmentType = "other"
)

// GarmentTypes lists every garment type in display order.
var GarmentTypes = []GarmentType{
	GarmentBlouse,
	GarmentSalwarKameez,
	GarmentLehenga,
	GarmentGown,
	GarmentDress,
	GarmentSkirt,
	GarmentTop,
	GarmentOther,
}

type MeasurementField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Hint  string `json:"hint,omitempty"`
}

// GarmentSpec describes one garment variant and the measurements it takes
// on top of the core body measurements.
type GarmentSpec struct {
	Type   GarmentType        `json:"type"`
	Label  string             `json:"label"`
	Fields []MeasurementField `json:"fields"`
}

// CoreMeasurements are the body measurements kept on the customer profile.
var CoreMeasurements = []MeasurementField{
	{Key: "bust", Label: "Bust / Chest"},
	{Key: "under_bust", Label: "Under Bust"},
	{Key: "waist", Label: "Waist"},
	{Key: "hip", Label: "Hip"},
	{Key: "shoulder_width", Label: "Shoulder Width"},
	{Key: "arm_length", Label: "Arm Length", Hint: "Shoulder to wrist"},
	{Key: "upper_arm", Label: "Upper Arm", Hint: "Circumference"},
	{Key: "neck_round", Label: "Neck Round"},
	{Key: "front_neck_depth", Label: "Front Neck Depth"},
	{Key: "back_neck_depth", Label: "Back Neck Depth"},
	{Key: "full_height", Label: "Full Height"},
}

var garmentSpecs = map[GarmentType]GarmentSpec{
	GarmentBlouse: {Type: GarmentBlouse, Label: "Blouse", Fields: []MeasurementField{
		{Key: "blouse_length", Label: "Blouse Length", Hint: "Shoulder to hem"},
		{Key: "cross_front", Label: "Cross Front", Hint: "Armhole to armhole (front)"},
		{Key: "cross_back", Label: "Cross Back", Hint: "Armhole to armhole (back)"},
		{Key: "dart_point", Label: "Dart Point", Hint: "Shoulder to bust point"},
		{Key: "armhole_depth", Label: "Armhole Depth", Hint: "Shoulder to underarm"},
		{Key: "sleeve_length", Label: "Sleeve Length"},
		{Key: "sleeve_opening", Label: "Sleeve Opening / Cuff"},
		{Key: "front_opening_style", Label: "Front Opening Style", Hint: "Center / Side / Back"},
	}},
	GarmentSalwarKameez: {Type: GarmentSalwarKameez, Label: "Salwar Kameez", Fields: []MeasurementField{
		{Key: "kameez_length", Label: "Kameez Length", Hint: "Shoulder to desired length"},
		{Key: "slit_length", Label: "Slit Length"},
		{Key: "salwar_length", Label: "Salwar Length", Hint: "Waist to ankle"},
		{Key: "salwar_knee_round", Label: "Knee Round"},
		{Key: "salwar_bottom", Label: "Salwar Bottom / Mohri"},
		{Key: "crotch_depth", Label: "Crotch Depth / Seat"},
		{Key: "salwar_style", Label: "Salwar Style", Hint: "Churidar / Patiala / Straight"},
	}},
	GarmentLehenga: {Type: GarmentLehenga, Label: "Lehenga", Fields: []MeasurementField{
		{Key: "lehenga_length", Label: "Lehenga Length", Hint: "Waist to floor"},
		{Key: "lehenga_waist", Label: "Lehenga Waist"},
		{Key: "flare", Label: "Flare / Kali", Hint: "Circle or panel count"},
		{Key: "can_can", Label: "Can-Can Layers", Hint: "Underlayer preference"},
	}},
	GarmentGown: {Type: GarmentGown, Label: "Gown", Fields: []MeasurementField{
		{Key: "bodice_length", Label: "Bodice Length", Hint: "Shoulder to waist"},
		{Key: "gown_full_length", Label: "Full Length", Hint: "Shoulder to floor"},
		{Key: "train_length", Label: "Train Length", Hint: "Floor extension"},
		{Key: "thigh_circumference", Label: "Thigh Circumference"},
		{Key: "knee_circumference", Label: "Knee Circumference"},
	}},
	GarmentDress: {Type: GarmentDress, Label: "Dress", Fields: []MeasurementField{
		{Key: "dress_length", Label: "Dress Length", Hint: "Waist to hem"},
		{Key: "bodice_length", Label: "Bodice Length", Hint: "Shoulder to waist"},
		{Key: "thigh_circumference", Label: "Thigh Circumference"},
		{Key: "knee_circumference", Label: "Knee Circumference"},
		{Key: "sleeve_length", Label: "Sleeve Length"},
		{Key: "sleeve_opening", Label: "Sleeve Opening"},
	}},
	GarmentSkirt: {Type: GarmentSkirt, Label: "Skirt", Fields: []MeasurementField{
		{Key: "skirt_length", Label: "Skirt Length", Hint: "Waist to hem"},
		{Key: "skirt_waist", Label: "Skirt Waist"},
		{Key: "thigh_circumference", Label: "Thigh Circumference"},
		{Key: "knee_circumference", Label: "Knee Circumference"},
		{Key: "flare", Label: "Flare / Style"},
	}},
	GarmentTop: {Type: GarmentTop, Label: "Top", Fields: []MeasurementField{
		{Key: "top_length", Label: "Top Length"},
		{Key: "sleeve_length", Label: "Sleeve Length"},
		{Key: "sleeve_opening", Label: "Sleeve Opening"},
		{Key: "cross_front", Label: "Cross Front"},
		{Key: "cross_back", Label: "Cross Back"},
	}},
	GarmentOther: {Type: GarmentOther, Label: "Other", Fields: []MeasurementField{
		{Key: "garment_length", Label: "Garment Length"},
		{Key: "custom_1", Label: "Custom Measurement 1"},
		{Key: "custom_2", Label: "Custom Measurement 2"},
		{Key: "custom_3", Label: "Custom Measurement 3"},
	}},
}

func (g GarmentType) Valid() bool {
	_, ok := garmentSpecs[g]
	return ok
}

func (g GarmentType) Label() string {
	if spec, ok := garmentSpecs[g]; ok {
		return spec.Label
	}
	return string(g)
}

// Spec returns the garment variant description; ok is false for unknown types.
func (g GarmentType) Spec() (GarmentSpec, bool) {
	spec, ok := garmentSpecs[g]
	return spec, ok
}

// Allows reports whether key is a core measurement or one of the
// garment's own measurements.
func (g GarmentType) Allows(key string) bool {
	if IsCoreMeasurement(key) {
		return true
	}
	spec, ok := garmentSpecs[g]
	if !ok {
		return false
	}
	for _, f := range spec.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func IsCoreMeasurement(key string) bool {
	for _, f := range CoreMeasurements {
		if f.Key == key {
			return true
		}
	}
	return false
}

// MeasurementLabel looks the key up in the core catalog first and then in
// the garment's fields. Unknown keys are returned unchanged.
func MeasurementLabel(g GarmentType, key string) string {
	for _, f := range CoreMeasurements {
		if f.Key == key {
			return f.Label
		}
	}
	if spec, ok := garmentSpecs[g]; ok {
		for _, f := range spec.Fields {
			if f.Key == key {
				return f.Label
			}
		}
	}
	return key
}

// GarmentCatalog returns all garment variants in display order.
func GarmentCatalog() []GarmentSpec {
	out := make([]GarmentSpec, 0, len(GarmentTypes))
	for _, g := range GarmentTypes {
		out = append(out, garmentSpecs[g])
	}
	return out
}
