package models

// School mirrors the upstream school document. Descriptive values stay
// strings end to end so form edits round-trip without reformatting; only
// genuine yes/no facts are booleans.
type School struct {
	ID                       string           `json:"_id,omitempty"`
	SchoolCode               string           `json:"school_code"`
	SchoolName               string           `json:"school_name"`
	AcademicYear             string           `json:"academic_year"`
	EstablishedYear          string           `json:"established_year"`
	SchoolCategory           string           `json:"school_category"`
	SchoolType               string           `json:"school_type"`
	SchoolManagement         string           `json:"school_management"`
	AffiliationBoard         string           `json:"affiliation_board"`
	SchoolShift              string           `json:"school_shift"`
	SchoolBuildingStatus     string           `json:"school_building_status"`
	AcademicSessionStart     string           `json:"academic_session_start_month"`
	Location                 SchoolLocation   `json:"location"`
	Headmaster               Headmaster       `json:"headmaster"`
	EnrollmentSummary        Enrollment       `json:"enrollment_summary"`
	StaffSummary             StaffSummary     `json:"staff_summary"`
	Infrastructure           Infrastructure   `json:"infrastructure"`
	Toilets                  Toilets          `json:"toilets"`
	WaterFacility            WaterFacility    `json:"water_facility"`
	MidDayMeal               MidDayMeal       `json:"mid_day_meal"`
	SchoolInspection         SchoolInspection `json:"school_inspection"`
	PTAMeetingsLastYear      string           `json:"pta_meetings_last_year"`
	ClassesOffered           []string         `json:"classes_offered"`
}

type SchoolLocation struct {
	State        string   `json:"state"`
	StateCode    string   `json:"state_code"`
	District     string   `json:"district"`
	DistrictCode string   `json:"district_code"`
	Block        string   `json:"block"`
	Cluster      string   `json:"cluster"`
	VillageTown  string   `json:"village_town"`
	PinCode      string   `json:"pin_code"`
	Geo          GeoPoint `json:"geo"`
	UrbanRural   string   `json:"urban_rural"`
}

type GeoPoint struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Headmaster struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

type Enrollment struct {
	TotalStudents string `json:"total_students"`
	Boys          string `json:"boys"`
	Girls         string `json:"girls"`
	CWSN          string `json:"cwsn"`
}

type StaffSummary struct {
	TotalTeachers    string `json:"total_teachers"`
	MaleTeachers     string `json:"male_teachers"`
	FemaleTeachers   string `json:"female_teachers"`
	TrainedTeachers  string `json:"trained_teachers"`
	NonTeachingStaff string `json:"non_teaching_staff"`
}

type Infrastructure struct {
	TotalClassrooms   string         `json:"total_classrooms"`
	RoomsCondition    RoomsCondition `json:"rooms_condition"`
	Electricity       bool           `json:"electricity"`
	Internet          bool           `json:"internet"`
	ComputerLab       bool           `json:"computer_lab"`
	NumberOfComputers string         `json:"number_of_computers"`
	Library           Library        `json:"library"`
	Playground        bool           `json:"playground"`
	BoundaryWall      string         `json:"boundary_wall"`
	RampAvailable     bool           `json:"ramp_available"`
	KitchenShed       bool           `json:"kitchen_shed"`
}

type RoomsCondition struct {
	Good               string `json:"good"`
	RequireMinorRepair string `json:"require_minor_repair"`
	RequireMajorRepair string `json:"require_major_repair"`
}

type Library struct {
	Available  bool   `json:"available"`
	BooksCount string `json:"books_count"`
}

type Toilets struct {
	Boys  ToiletBlock `json:"boys"`
	Girls ToiletBlock `json:"girls"`
	CWSN  CWSNToilet  `json:"cwsn"`
}

type ToiletBlock struct {
	Total      string `json:"total"`
	Functional string `json:"functional"`
}

type CWSNToilet struct {
	Total          string `json:"total"`
	Functional     string `json:"functional"`
	RampAccessible bool   `json:"ramp_accessible"`
}

type WaterFacility struct {
	DrinkingWaterAvailable bool   `json:"drinking_water_available"`
	Source                 string `json:"source"`
}

type MidDayMeal struct {
	Provided         bool   `json:"provided"`
	CookedOnPremises bool   `json:"cooked_on_premises"`
	MealDaysPerWeek  string `json:"meal_days_per_week"`
}

type SchoolInspection struct {
	LastInspectedOn string `json:"last_inspected_on"`
	InspectedBy     string `json:"inspected_by"`
	Remarks         string `json:"remarks"`
}

// SchoolRef is the denormalized school reference nested inside teacher,
// student, fee-structure and payment documents.
type SchoolRef struct {
	ID         string `json:"_id"`
	SchoolCode string `json:"school_code"`
	SchoolName string `json:"school_name,omitempty"`
}

// SchoolOption backs the school selector combobox.
type SchoolOption struct {
	ID         string `json:"id"`
	SchoolCode string `json:"school_code"`
	SchoolName string `json:"school_name"`
	Label      string `json:"label"`
}
