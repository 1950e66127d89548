package dirigera

import (
	"context"
	"fmt"
)

// ListDevices returns every device known to the hub, including the hub
// itself.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	data, err := c.get(ctx, "/devices")
	if err != nil {
		return nil, err
	}

	devices, err := unmarshalResponse[[]Device](data, "device list")
	if err != nil {
		return nil, err
	}
	return *devices, nil
}

// GetDevice returns a single device by ID.
func (c *Client) GetDevice(ctx context.Context, deviceID string) (*Device, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	data, err := c.get(ctx, "/devices/"+deviceID)
	if err != nil {
		return nil, err
	}

	return unmarshalResponse[Device](data, "device")
}

// setAttributes patches a device's attributes. The hub expects the body as a
// single-element array of attribute patches.
func (c *Client) setAttributes(ctx context.Context, deviceID string, attrs map[string]any) error {
	body := []map[string]any{{"attributes": attrs}}
	_, err := c.patch(ctx, "/devices/"+deviceID, body)
	return err
}

// requireReceives gates a mutation on the device's receivable capabilities.
func requireReceives(device *Device, caps ...Capability) error {
	if !device.Capabilities.Receives(caps...) {
		return fmt.Errorf("%w: %v", ErrMissingCapability, caps)
	}
	return nil
}

// RenameDevice sets a device's custom name. On success the passed device is
// updated with the new name.
func (c *Client) RenameDevice(ctx context.Context, device *Device, name string) error {
	if err := requireReceives(device, CapabilityCustomName); err != nil {
		return err
	}

	if err := c.setAttributes(ctx, device.ID, map[string]any{"customName": name}); err != nil {
		return err
	}

	device.Attributes.CustomName = name
	return nil
}

// ToggleOnOff flips a device between on and off. On success the passed
// device is updated with the new state.
func (c *Client) ToggleOnOff(ctx context.Context, device *Device) error {
	return c.SetOn(ctx, device, !device.Attributes.IsOn)
}

// SetOn turns a device on or off. On success the passed device is updated
// with the new state.
func (c *Client) SetOn(ctx context.Context, device *Device, on bool) error {
	if err := requireReceives(device, CapabilityIsOn); err != nil {
		return err
	}

	if err := c.setAttributes(ctx, device.ID, map[string]any{"isOn": on}); err != nil {
		return err
	}

	device.Attributes.IsOn = on
	return nil
}

// SetLightLevel sets the brightness of a light, 0 to 100. On success the
// passed device is updated with the new level.
func (c *Client) SetLightLevel(ctx context.Context, device *Device, level int) error {
	if err := requireReceives(device, CapabilityLightLevel); err != nil {
		return err
	}
	if level < 0 || level > 100 {
		return fmt.Errorf("dirigera: light level %d not within 0 -> 100", level)
	}

	if err := c.setAttributes(ctx, device.ID, map[string]any{"lightLevel": level}); err != nil {
		return err
	}

	device.Attributes.LightLevel = &level
	return nil
}

// SetColorTemperature sets the colour temperature in kelvin. The device
// reports its supported range; note the hub lists the warm end as the
// "min" and the cold end as the "max", so min is numerically larger.
// On success the passed device is updated with the new temperature.
func (c *Client) SetColorTemperature(ctx context.Context, device *Device, temperature int) error {
	if err := requireReceives(device, CapabilityColorTemperature); err != nil {
		return err
	}

	warmest := device.Attributes.ColorTemperatureMin
	coldest := device.Attributes.ColorTemperatureMax
	if warmest == nil || coldest == nil {
		return fmt.Errorf("dirigera: device %s reports no color temperature range", device.ID)
	}
	if temperature < *coldest || temperature > *warmest {
		return fmt.Errorf("dirigera: color temperature %d not within %d -> %d", temperature, *coldest, *warmest)
	}

	if err := c.setAttributes(ctx, device.ID, map[string]any{"colorTemperature": temperature}); err != nil {
		return err
	}

	device.Attributes.ColorTemperature = &temperature
	return nil
}

// SetHueSaturation sets a light's colour by hue (0 to 360 degrees) and
// saturation (0 to 1). On success the passed device is updated with the new
// values.
func (c *Client) SetHueSaturation(ctx context.Context, device *Device, hue, saturation float64) error {
	if err := requireReceives(device, CapabilityColorHue, CapabilityColorSaturation); err != nil {
		return err
	}
	if hue < 0 || hue > 360 {
		return fmt.Errorf("dirigera: hue %v not within 0.0 -> 360.0", hue)
	}
	if saturation < 0 || saturation > 1 {
		return fmt.Errorf("dirigera: saturation %v not within 0.0 -> 1.0", saturation)
	}

	attrs := map[string]any{
		"colorHue":        hue,
		"colorSaturation": saturation,
	}
	if err := c.setAttributes(ctx, device.ID, attrs); err != nil {
		return err
	}

	device.Attributes.ColorHue = &hue
	device.Attributes.ColorSaturation = &saturation
	return nil
}

// SetStartupBehaviour sets what state the device enters after a power cycle.
// On success the passed device is updated with the new behaviour.
func (c *Client) SetStartupBehaviour(ctx context.Context, device *Device, behaviour Startup) error {
	if err := c.setAttributes(ctx, device.ID, map[string]any{"startupOnOff": behaviour}); err != nil {
		return err
	}

	device.Attributes.StartupOnOff = &behaviour
	return nil
}

// SetBlindsTargetLevel sets the target level for blinds, 0 (open) to 100
// (closed). On success the passed device is updated with the new target.
func (c *Client) SetBlindsTargetLevel(ctx context.Context, device *Device, level int) error {
	if err := requireReceives(device, CapabilityBlindsState); err != nil {
		return err
	}
	if level < 0 || level > 100 {
		return fmt.Errorf("dirigera: blinds level %d not within 0 -> 100", level)
	}

	if err := c.setAttributes(ctx, device.ID, map[string]any{"blindsTargetLevel": level}); err != nil {
		return err
	}

	device.Attributes.BlindsTargetLevel = &level
	return nil
}
