package dirigera

import (
	"context"
	"encoding/json"
	"time"
)

// Scene is a saved configuration for a set of devices, triggered manually or
// on a schedule from the app.
type Scene struct {
	ID                  string         `json:"id"`
	Type                string         `json:"type"`
	Info                SceneInfo      `json:"info"`
	Actions             []SceneAction  `json:"actions"`
	Commands            []string       `json:"commands"`
	Triggers            []SceneTrigger `json:"triggers"`
	UndoAllowedDuration int            `json:"undoAllowedDuration"`
	CreatedAt           time.Time      `json:"createdAt"`
	LastCompleted       *time.Time     `json:"lastCompleted,omitempty"`
	LastTriggered       *time.Time     `json:"lastTriggered,omitempty"`
	LastUndo            *time.Time     `json:"lastUndo,omitempty"`
}

// SceneInfo is the name and icon shown in the app.
type SceneInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SceneAction applies attributes to one device when the scene runs.
type SceneAction struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	DeviceID   string          `json:"deviceId"`
	Attributes SceneAttributes `json:"attributes"`
}

// SceneAttributes are the attribute values an action applies.
type SceneAttributes struct {
	IsOn             bool `json:"isOn"`
	LightLevel       *int `json:"lightLevel,omitempty"`
	ColorTemperature *int `json:"colorTemperature,omitempty"`
}

// SceneTrigger describes when a scene fires: from the app, at a fixed time,
// or following sunrise/sunset. Trigger and EndTriggerEvent keep their raw
// JSON since their shape varies by type.
type SceneTrigger struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Disabled        bool            `json:"disabled"`
	TriggeredAt     *time.Time      `json:"triggeredAt,omitempty"`
	NextTriggerAt   *time.Time      `json:"nextTriggerAt,omitempty"`
	Trigger         json.RawMessage `json:"trigger,omitempty"`
	EndTriggerEvent json.RawMessage `json:"endTriggerEvent,omitempty"`
}

// ListScenes returns all scenes known to the hub.
func (c *Client) ListScenes(ctx context.Context) ([]Scene, error) {
	data, err := c.get(ctx, "/scenes")
	if err != nil {
		return nil, err
	}

	scenes, err := unmarshalResponse[[]Scene](data, "scene list")
	if err != nil {
		return nil, err
	}
	return *scenes, nil
}

// GetScene returns a single scene by ID.
func (c *Client) GetScene(ctx context.Context, sceneID string) (*Scene, error) {
	if sceneID == "" {
		return nil, ErrEmptySceneID
	}

	data, err := c.get(ctx, "/scenes/"+sceneID)
	if err != nil {
		return nil, err
	}

	return unmarshalResponse[Scene](data, "scene")
}

// TriggerScene runs a scene now, independent of its schedule.
func (c *Client) TriggerScene(ctx context.Context, sceneID string) error {
	if sceneID == "" {
		return ErrEmptySceneID
	}

	_, err := c.post(ctx, "/scenes/"+sceneID+"/trigger", nil)
	return err
}

// UndoScene reverts the changes made by a scene. The hub only allows this
// within the scene's undo window.
func (c *Client) UndoScene(ctx context.Context, sceneID string) error {
	if sceneID == "" {
		return ErrEmptySceneID
	}

	_, err := c.post(ctx, "/scenes/"+sceneID+"/undo", nil)
	return err
}
