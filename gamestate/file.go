package gamestate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/provable-games/gametoken/felt"
)

type fileGame struct {
	Address string              `json:"address"`
	Name    string              `json:"name"`
	Tokens  map[string]Snapshot `json:"tokens"`
}

type fileDoc struct {
	Games []fileGame `json:"games"`
}

// FromFile loads a Reader from a JSON document. Used by the CLI, which has
// no live chain to read game state from:
//
//	{
//	  "games": [
//	    {
//	      "address": "0x100",
//	      "name": "dungeon",
//	      "tokens": {"1": {"score": 40, "game_over": true, "completed": [7, 9]}}
//	    }
//	  ]
//	}
func FromFile(path string) (*Memory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gamestate: read %s: %w", path, err)
	}

	var doc fileDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("gamestate: parse %s: %w", path, err)
	}

	m := NewMemory()
	for _, g := range doc.Games {
		addr, err := felt.FromHex(g.Address)
		if err != nil {
			return nil, fmt.Errorf("gamestate: game address: %w", err)
		}
		m.AddGame(addr, g.Name)
		for tok, snap := range g.Tokens {
			var id uint64
			if _, err := fmt.Sscanf(tok, "%d", &id); err != nil {
				return nil, fmt.Errorf("gamestate: token id %q: %w", tok, err)
			}
			m.SetState(addr, id, snap)
		}
	}
	return m, nil
}
