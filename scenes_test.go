package dirigera

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_ListScenes(t *testing.T) {
	t.Run("successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/scenes" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/scenes")
			}
			scenes := []Scene{
				{ID: "s1", Type: "userScene", Info: SceneInfo{Name: "Movie night", Icon: "scenes_movie"}},
				{ID: "s2", Type: "userScene", Info: SceneInfo{Name: "Good morning", Icon: "scenes_sunrise"}},
			}
			json.NewEncoder(w).Encode(scenes)
		}))
		defer server.Close()

		client, _ := NewClient("192.168.1.83", "token", WithBaseURL(server.URL))
		scenes, err := client.ListScenes(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scenes) != 2 {
			t.Errorf("got %d scenes, want 2", len(scenes))
		}
		if scenes[0].Info.Name != "Movie night" {
			t.Errorf("Info.Name = %q, want %q", scenes[0].Info.Name, "Movie night")
		}
	})

	t.Run("triggers keep raw shape", func(t *testing.T) {
		createdAt := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{
				"id": "s1",
				"type": "userScene",
				"info": {"name": "Evening", "icon": "scenes_moon"},
				"createdAt": "` + createdAt.Format(time.RFC3339) + `",
				"undoAllowedDuration": 30,
				"triggers": [{
					"id": "t1",
					"type": "sunriseSunset",
					"disabled": false,
					"trigger": {"type": "sunset", "offset": -30}
				}],
				"actions": [{
					"id": "a1",
					"type": "device",
					"deviceId": "light-1",
					"attributes": {"isOn": true, "lightLevel": 20}
				}],
				"commands": []
			}]`))
		}))
		defer server.Close()

		client, _ := NewClient("192.168.1.83", "token", WithBaseURL(server.URL))
		scenes, err := client.ListScenes(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scenes) != 1 {
			t.Fatalf("got %d scenes, want 1", len(scenes))
		}

		scene := scenes[0]
		if !scene.CreatedAt.Equal(createdAt) {
			t.Errorf("CreatedAt = %v, want %v", scene.CreatedAt, createdAt)
		}
		if len(scene.Triggers) != 1 || scene.Triggers[0].Type != "sunriseSunset" {
			t.Fatalf("triggers = %+v, want one sunriseSunset trigger", scene.Triggers)
		}

		var trig struct {
			Type   string `json:"type"`
			Offset int    `json:"offset"`
		}
		if err := json.Unmarshal(scene.Triggers[0].Trigger, &trig); err != nil {
			t.Fatalf("failed to parse raw trigger: %v", err)
		}
		if trig.Type != "sunset" || trig.Offset != -30 {
			t.Errorf("trigger = %+v, want sunset at -30", trig)
		}

		if len(scene.Actions) != 1 {
			t.Fatalf("actions = %+v, want one action", scene.Actions)
		}
		action := scene.Actions[0]
		if action.DeviceID != "light-1" || !action.Attributes.IsOn {
			t.Errorf("action = %+v, want light-1 turned on", action)
		}
		if action.Attributes.LightLevel == nil || *action.Attributes.LightLevel != 20 {
			t.Error("action light level lost in parsing")
		}
	})
}

func TestClient_GetScene(t *testing.T) {
	t.Run("successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/scenes/s1" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/scenes/s1")
			}
			json.NewEncoder(w).Encode(Scene{ID: "s1", Info: SceneInfo{Name: "Movie night"}})
		}))
		defer server.Close()

		client, _ := NewClient("192.168.1.83", "token", WithBaseURL(server.URL))
		scene, err := client.GetScene(context.Background(), "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if scene.ID != "s1" {
			t.Errorf("ID = %q, want %q", scene.ID, "s1")
		}
	})

	t.Run("empty scene ID", func(t *testing.T) {
		client, _ := NewClient("192.168.1.83", "token")
		if _, err := client.GetScene(context.Background(), ""); err != ErrEmptySceneID {
			t.Errorf("expected ErrEmptySceneID, got %v", err)
		}
	})
}

func TestClient_TriggerScene(t *testing.T) {
	t.Run("posts to trigger endpoint", func(t *testing.T) {
		var gotPath, gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client, _ := NewClient("192.168.1.83", "token", WithBaseURL(server.URL))
		if err := client.TriggerScene(context.Background(), "s1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPost {
			t.Errorf("method = %q, want POST", gotMethod)
		}
		if gotPath != "/scenes/s1/trigger" {
			t.Errorf("path = %q, want /scenes/s1/trigger", gotPath)
		}
	})

	t.Run("empty scene ID", func(t *testing.T) {
		client, _ := NewClient("192.168.1.83", "token")
		if err := client.TriggerScene(context.Background(), ""); err != ErrEmptySceneID {
			t.Errorf("expected ErrEmptySceneID, got %v", err)
		}
	})
}

func TestClient_UndoScene(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, _ := NewClient("192.168.1.83", "token", WithBaseURL(server.URL))
	if err := client.UndoScene(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/scenes/s1/undo" {
		t.Errorf("path = %q, want /scenes/s1/undo", gotPath)
	}
}
