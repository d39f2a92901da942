package http

import (
	"encoding/json"
	"net/http"

	"github.com/speakeasy-learn/eslprep/internal/placement"
)

// ReplayPlacementsHandler replays a client's gesture log through the
// placement selector and returns the resulting item→target placements.
// Sorting activities submit their raw gestures instead of a final layout,
// so mode gating and pick/place semantics are enforced in one place and a
// single gesture can never apply twice.
func ReplayPlacementsHandler() http.HandlerFunc {
	type gesture struct {
		Kind   string `json:"kind"` // pick|place|dragstart|drop
		Item   string `json:"item,omitempty"`
		Target string `json:"target,omitempty"`
	}
	type out struct {
		Mode       placement.Mode    `json:"mode"`
		Placements map[string]string `json:"placements"` // item -> target
		Held       string            `json:"held,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Setting      placement.Mode `json:"setting"`
			TouchCapable bool           `json:"touch_capable"`
			Gestures     []gesture      `json:"gestures"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		mode := placement.Resolve(req.Setting, req.TouchCapable)
		placements := map[string]string{}
		sel := placement.NewSelector(mode, func(item, target string) bool {
			placements[item] = target
			return true
		})

		for _, g := range req.Gestures {
			switch g.Kind {
			case "pick":
				sel.HandleTap(g.Item, "")
			case "place":
				sel.HandleTap("", g.Target)
			case "dragstart":
				sel.HandleDragEvent(placement.DragStart, g.Item, "")
			case "drop":
				sel.HandleDragEvent(placement.Drop, "", g.Target)
			}
		}

		writeJSON(w, out{Mode: mode, Placements: placements, Held: sel.Held()})
	}
}
