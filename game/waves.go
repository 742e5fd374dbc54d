package game

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed waves.yaml
var wavesYAML []byte

// defaultMaxAngle is the homing clamp applied when a wave entry omits one,
// 60 degrees either side of straight down the lane.
const defaultMaxAngle = 1.05

type EnemyDescription struct {
	SpeedMin  float64 `yaml:"speed_min"`
	SpeedMax  float64 `yaml:"speed_max"`
	TurnRate  float64 `yaml:"turn_rate"`
	MaxAngle  float64 `yaml:"max_angle"`
	Health    int64   `yaml:"health"`
	Damage    int64   `yaml:"damage"`
	SpawnRate float64 `yaml:"spawn_rate"`
	Scale     float64 `yaml:"scale"`
	Asset     string  `yaml:"asset"`
}

type UpgradeDescription struct {
	Type      UpgradeType `yaml:"type"`
	SpeedMin  float64     `yaml:"speed_min"`
	SpeedMax  float64     `yaml:"speed_max"`
	SpawnRate float64     `yaml:"spawn_rate"`
}

type WaveDescription struct {
	Duration float64              `yaml:"duration"`
	Enemies  []EnemyDescription   `yaml:"enemies"`
	Upgrades []UpgradeDescription `yaml:"upgrades"`
}

type waveFile struct {
	Waves []WaveDescription `yaml:"waves"`
}

var upgradeTypeNames = map[string]UpgradeType{
	"health":     UpgradeHealth,
	"laser":      UpgradeLaser,
	"grenade":    UpgradeGrenade,
	"uber_laser": UpgradeUberLaser,
}

func (u *UpgradeType) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}

	typ, ok := upgradeTypeNames[name]
	if !ok {
		return fmt.Errorf("unknown upgrade type %q", name)
	}
	*u = typ
	return nil
}

func (u UpgradeType) String() string {
	for name, typ := range upgradeTypeNames {
		if typ == u {
			return name
		}
	}
	return fmt.Sprintf("UpgradeType(%d)", int(u))
}

// LoadWaves parses and validates a wave table. Malformed configuration is
// rejected here so the simulation never has to guard against it.
func LoadWaves(data []byte) ([]WaveDescription, error) {
	var file waveFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing wave table: %w", err)
	}

	if len(file.Waves) == 0 {
		return nil, fmt.Errorf("wave table is empty")
	}

	for i := range file.Waves {
		wave := &file.Waves[i]
		if wave.Duration <= 0 {
			return nil, fmt.Errorf("wave %d: duration must be positive, got %v", i+1, wave.Duration)
		}
		if len(wave.Enemies) == 0 {
			return nil, fmt.Errorf("wave %d: no enemy descriptions", i+1)
		}

		for j := range wave.Enemies {
			enemy := &wave.Enemies[j]
			if enemy.MaxAngle == 0 {
				enemy.MaxAngle = defaultMaxAngle
			}

			if enemy.SpawnRate <= 0 {
				return nil, fmt.Errorf("wave %d enemy %d: spawn rate must be positive, got %v", i+1, j+1, enemy.SpawnRate)
			}
			if enemy.SpeedMin <= 0 || enemy.SpeedMax < enemy.SpeedMin {
				return nil, fmt.Errorf("wave %d enemy %d: invalid speed range [%v, %v]", i+1, j+1, enemy.SpeedMin, enemy.SpeedMax)
			}
			if enemy.TurnRate < 0 {
				return nil, fmt.Errorf("wave %d enemy %d: turn rate must not be negative, got %v", i+1, j+1, enemy.TurnRate)
			}
			if enemy.Health <= 0 {
				return nil, fmt.Errorf("wave %d enemy %d: health must be positive, got %d", i+1, j+1, enemy.Health)
			}
			if enemy.Damage < 0 {
				return nil, fmt.Errorf("wave %d enemy %d: damage must not be negative, got %d", i+1, j+1, enemy.Damage)
			}
			if enemy.Scale <= 0 {
				return nil, fmt.Errorf("wave %d enemy %d: scale must be positive, got %v", i+1, j+1, enemy.Scale)
			}
			if enemy.Asset == "" {
				return nil, fmt.Errorf("wave %d enemy %d: missing asset", i+1, j+1)
			}
		}

		for j := range wave.Upgrades {
			upgrade := &wave.Upgrades[j]
			if upgrade.Type < 0 || upgrade.Type >= upgradeTypeCount {
				return nil, fmt.Errorf("wave %d upgrade %d: unknown type %d", i+1, j+1, int(upgrade.Type))
			}
			if upgrade.SpawnRate <= 0 {
				return nil, fmt.Errorf("wave %d upgrade %d: spawn rate must be positive, got %v", i+1, j+1, upgrade.SpawnRate)
			}
			if upgrade.SpeedMin <= 0 || upgrade.SpeedMax < upgrade.SpeedMin {
				return nil, fmt.Errorf("wave %d upgrade %d: invalid speed range [%v, %v]", i+1, j+1, upgrade.SpeedMin, upgrade.SpeedMax)
			}
		}
	}

	return file.Waves, nil
}

// DefaultWaves returns the embedded five-wave table.
func DefaultWaves() []WaveDescription {
	waves, err := LoadWaves(wavesYAML)
	if err != nil {
		panic("embedded wave table invalid: " + err.Error())
	}
	return waves
}
