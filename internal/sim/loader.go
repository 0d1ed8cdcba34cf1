package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/focustense/penpals-server/internal/logger"
	"github.com/focustense/penpals-server/internal/worlddate"
)

type npcFile struct {
	NPCs map[string]NPCDefinition `yaml:"npcs"`
}

type playerFile struct {
	Players []PlayerDefinition `yaml:"players"`
}

// LoadNPCs reads NPC definitions from a YAML file.
func LoadNPCs(path string) (map[string]*NPC, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read NPC file %s: %w", path, err)
	}
	var file npcFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse NPC file %s: %w", path, err)
	}
	npcs := make(map[string]*NPC, len(file.NPCs))
	for name, def := range file.NPCs {
		npcs[name] = NewNPC(name, def)
	}
	logger.Infof("Loaded %d NPCs from %s", len(npcs), path)
	return npcs, nil
}

// LoadPlayers reads player definitions from a YAML file.
func LoadPlayers(path string) ([]*Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read player file %s: %w", path, err)
	}
	var file playerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse player file %s: %w", path, err)
	}
	players := make([]*Player, 0, len(file.Players))
	seen := make(map[int64]bool)
	for _, def := range file.Players {
		if def.Name == "" {
			return nil, fmt.Errorf("player id %d in %s has no name", def.ID, path)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate player id %d in %s", def.ID, path)
		}
		seen[def.ID] = true
		players = append(players, NewPlayer(def))
	}
	logger.Infof("Loaded %d players from %s", len(players), path)
	return players, nil
}

// LoadSimulation builds a simulation at the given date from NPC and player
// fixture files.
func LoadSimulation(date worlddate.WorldDate, npcPath, playerPath string) (*Simulation, error) {
	s := NewSimulation(date)
	npcs, err := LoadNPCs(npcPath)
	if err != nil {
		return nil, err
	}
	for _, n := range npcs {
		s.AddNPC(n)
	}
	players, err := LoadPlayers(playerPath)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		s.AddPlayer(p)
	}
	return s, nil
}
