package api

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestFindPathPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload FindPathPayload
		wantErr bool
	}{
		{"ok", FindPathPayload{ID: "p1", Start: PixelView{1, 2}, End: PixelView{300, 40}}, false},
		{"missing id", FindPathPayload{Start: PixelView{1, 2}, End: PixelView{3, 4}}, true},
		{"long id", FindPathPayload{ID: strings.Repeat("x", 65)}, true},
		{"nan start", FindPathPayload{ID: "p", Start: PixelView{math.NaN(), 0}}, true},
		{"inf end", FindPathPayload{ID: "p", End: PixelView{0, math.Inf(1)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestViewportPayload_Validate(t *testing.T) {
	if err := (ViewportPayload{X: 10, Y: -5}).Validate(); err != nil {
		t.Errorf("valid viewport rejected: %v", err)
	}
	if err := (ViewportPayload{X: math.NaN()}).Validate(); err == nil {
		t.Error("NaN viewport accepted")
	}
}

func TestPathView_NullWaypoints(t *testing.T) {
	b, err := json.Marshal(ServerMessage{Type: MsgPath, Path: &PathView{ID: "a"}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"PATH","path":{"id":"a","waypoints":null}}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
