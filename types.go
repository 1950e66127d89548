package dirigera

import "time"

// DeviceKind is the top-level "type" discriminator on a device resource.
type DeviceKind string

// Device kind constants.
const (
	DeviceKindBlind      DeviceKind = "blind"
	DeviceKindController DeviceKind = "controller"
	DeviceKindGateway    DeviceKind = "gateway"
	DeviceKindLight      DeviceKind = "light"
	DeviceKindOutlet     DeviceKind = "outlet"
	DeviceKindSensor     DeviceKind = "sensor"
)

// DeviceType is the hub's finer-grained device classification. It does not
// always overlap with DeviceKind.
type DeviceType string

// Device type constants.
const (
	DeviceTypeLightController DeviceType = "lightController"
	DeviceTypeLight           DeviceType = "light"
	DeviceTypeGateway         DeviceType = "gateway"
	DeviceTypeMotionSensor    DeviceType = "motionSensor"
	DeviceTypeOutlet          DeviceType = "outlet"
)

// Capability is something a device can send (report) or receive (be told).
type Capability string

// Capability constants.
const (
	CapabilityBlindsState      Capability = "blindsState"
	CapabilityColorHue         Capability = "colorHue"
	CapabilityColorSaturation  Capability = "colorSaturation"
	CapabilityColorTemperature Capability = "colorTemperature"
	CapabilityCoordinates      Capability = "coordinates"
	CapabilityCountryCode      Capability = "countryCode"
	CapabilityCustomName       Capability = "customName"
	CapabilityIsOn             Capability = "isOn"
	CapabilityLightLevel       Capability = "lightLevel"
	CapabilityLogLevel         Capability = "logLevel"
	CapabilityPermittingJoin   Capability = "permittingJoin"
	CapabilityTime             Capability = "time"
	CapabilityTimezone         Capability = "timezone"
	CapabilityUserConsents     Capability = "userConsents"
)

// Startup describes what state a device enters after a power cycle.
type Startup string

// Startup behaviour constants.
const (
	StartupOn       Startup = "startOn"
	StartupOff      Startup = "startOff"
	StartupPrevious Startup = "startPrevious"
	StartupToggle   Startup = "startToggle"
)

// Device represents any resource that can connect to the hub, including the
// hub itself. All kinds share the same shape; attributes that only apply to
// some kinds are pointers.
type Device struct {
	ID           string       `json:"id"`
	Type         DeviceKind   `json:"type"`
	DeviceType   DeviceType   `json:"deviceType"`
	CreatedAt    time.Time    `json:"createdAt"`
	IsReachable  bool         `json:"isReachable"`
	IsHidden     *bool        `json:"isHidden,omitempty"`
	LastSeen     time.Time    `json:"lastSeen"`
	Room         *Room        `json:"room,omitempty"`
	Attributes   Attributes   `json:"attributes"`
	RemoteLinks  []string     `json:"remoteLinks,omitempty"`
	Capabilities Capabilities `json:"capabilities"`
}

// Capabilities lists what a device can send and receive.
type Capabilities struct {
	CanSend    []Capability `json:"canSend"`
	CanReceive []Capability `json:"canReceive"`
}

// Receives reports whether every required capability appears in CanReceive.
func (c Capabilities) Receives(required ...Capability) bool {
	for _, want := range required {
		found := false
		for _, got := range c.CanReceive {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Room is the room a device is assigned to in the app.
type Room struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Attributes holds per-device state. Fields common to all devices are plain
// values; kind-specific fields are pointers and nil when absent.
type Attributes struct {
	CustomName       string  `json:"customName"`
	FirmwareVersion  string  `json:"firmwareVersion,omitempty"`
	HardwareVersion  string  `json:"hardwareVersion,omitempty"`
	Manufacturer     string  `json:"manufacturer,omitempty"`
	Model            string  `json:"model,omitempty"`
	OtaPolicy        string  `json:"otaPolicy,omitempty"`
	OtaProgress      int     `json:"otaProgress,omitempty"`
	OtaScheduleEnd   string  `json:"otaScheduleEnd,omitempty"`
	OtaScheduleStart string  `json:"otaScheduleStart,omitempty"`
	OtaState         string  `json:"otaState,omitempty"`
	OtaStatus        string  `json:"otaStatus,omitempty"`
	ProductCode      *string `json:"productCode,omitempty"`
	SerialNumber     string  `json:"serialNumber,omitempty"`

	// Lights, controllers and outlets
	IsOn bool `json:"isOn,omitempty"`

	// Lights and outlets
	StartupOnOff *Startup `json:"startupOnOff,omitempty"`

	// Lights
	LightLevel          *int     `json:"lightLevel,omitempty"`
	PermittingJoin      bool     `json:"permittingJoin,omitempty"`
	ColorMode           *string  `json:"colorMode,omitempty"`
	ColorTemperature    *int     `json:"colorTemperature,omitempty"`
	ColorTemperatureMin *int     `json:"colorTemperatureMin,omitempty"`
	ColorTemperatureMax *int     `json:"colorTemperatureMax,omitempty"`
	StartupTemperature  *int     `json:"startupTemperature,omitempty"`
	ColorHue            *float64 `json:"colorHue,omitempty"`
	ColorSaturation     *float64 `json:"colorSaturation,omitempty"`
	CircadianRhythmMode *string  `json:"circadianRhythmMode,omitempty"`

	// Controllers
	BatteryPercentage *int `json:"batteryPercentage,omitempty"`

	// Blinds
	BlindsCurrentLevel *int    `json:"blindsCurrentLevel,omitempty"`
	BlindsTargetLevel  *int    `json:"blindsTargetLevel,omitempty"`
	BlindsState        *string `json:"blindsState,omitempty"`

	// Environment sensors
	CurrentTemperature *int `json:"currentTemperature,omitempty"`
	CurrentRH          *int `json:"currentRH,omitempty"`
	CurrentPM25        *int `json:"currentPM25,omitempty"`
	MaxMeasuredPM25    *int `json:"maxMeasuredPM25,omitempty"`
	MinMeasuredPM25    *int `json:"minMeasuredPM25,omitempty"`
	VocIndex           *int `json:"vocIndex,omitempty"`

	// Open/close sensors
	IsOpen *bool `json:"isOpen,omitempty"`
}
