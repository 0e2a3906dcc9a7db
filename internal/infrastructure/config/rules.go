package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/andrescamacho/baron-go/internal/domain/rules"
)

//go:embed games/*.yaml
var builtinVariants embed.FS

// RulesFile is the on-disk layout of a rule variant
type RulesFile struct {
	Name         string         `mapstructure:"name" validate:"required"`
	BankCash     int            `mapstructure:"bank_cash" validate:"gt=0"`
	StartingCash map[string]int `mapstructure:"starting_cash" validate:"required,min=1,dive,gt=0"`
	ShareSplit   []struct {
		Portion int `mapstructure:"portion" validate:"gt=0,lte=100"`
		Count   int `mapstructure:"count" validate:"gt=0"`
	} `mapstructure:"share_split" validate:"required,min=1,dive"`
	StockMarket struct {
		Values []int `mapstructure:"values" validate:"required,min=1,dive,gte=0"`
	} `mapstructure:"stock_market"`
	Auction   []string `mapstructure:"auction"`
	Companies struct {
		Private []struct {
			Abbreviation string `mapstructure:"abbreviation" validate:"required"`
			Name         string `mapstructure:"name" validate:"required"`
			FaceValue    int    `mapstructure:"face_value" validate:"gte=0"`
			Revenue      int    `mapstructure:"revenue" validate:"gte=0"`
		} `mapstructure:"private" validate:"dive"`
		Major []struct {
			Abbreviation string `mapstructure:"abbreviation" validate:"required"`
			Name         string `mapstructure:"name" validate:"required"`
		} `mapstructure:"major" validate:"required,min=1,dive"`
	} `mapstructure:"companies"`
	Trains []struct {
		Type      string `mapstructure:"type" validate:"required"`
		Count     int    `mapstructure:"count" validate:"gt=0"`
		FaceValue int    `mapstructure:"face_value" validate:"gte=0"`
		RustedBy  string `mapstructure:"rusted_by"`
	} `mapstructure:"trains" validate:"required,min=1,dive"`
	OperatingRounds map[string]int `mapstructure:"operating_rounds" validate:"required,min=1,dive,gt=0"`
}

// LoadRules loads a rule variant by name. A <variant>.yaml file in dir takes
// precedence over the built-in variant of the same name.
func LoadRules(variant, dir string) (*rules.Rules, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path, ok := variantFile(variant, dir); ok {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read rules %s: %w", path, err)
		}
	} else {
		data, err := builtinVariants.ReadFile("games/" + variant + ".yaml")
		if err != nil {
			return nil, &rules.ErrInvalidRules{Reason: fmt.Sprintf("unknown rules variant %q", variant)}
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse rules %s: %w", variant, err)
		}
	}

	var file RulesFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode rules %s: %w", variant, err)
	}
	if err := NewValidator().Validate(&file); err != nil {
		return nil, fmt.Errorf("invalid rules %s: %w", variant, err)
	}

	def, err := file.Definition()
	if err != nil {
		return nil, fmt.Errorf("invalid rules %s: %w", variant, err)
	}
	return rules.New(def)
}

// Definition converts the file into the domain's rule definition
func (f *RulesFile) Definition() (rules.Definition, error) {
	startingCash, err := intKeys(f.StartingCash)
	if err != nil {
		return rules.Definition{}, fmt.Errorf("starting_cash: %w", err)
	}
	operatingRounds, err := intKeys(f.OperatingRounds)
	if err != nil {
		return rules.Definition{}, fmt.Errorf("operating_rounds: %w", err)
	}

	def := rules.Definition{
		Name:             f.Name,
		BankCash:         f.BankCash,
		StartingCash:     startingCash,
		MarketValues:     append([]int(nil), f.StockMarket.Values...),
		AuctionCompanies: append([]string(nil), f.Auction...),
		OperatingRounds:  operatingRounds,
	}
	for _, s := range f.ShareSplit {
		def.ShareSplit = append(def.ShareSplit, rules.ShareSplit{Portion: s.Portion, Count: s.Count})
	}
	for _, p := range f.Companies.Private {
		def.Privates = append(def.Privates, rules.PrivateDefinition{
			Abbreviation: p.Abbreviation,
			Name:         p.Name,
			FaceValue:    p.FaceValue,
			Revenue:      p.Revenue,
		})
	}
	for _, m := range f.Companies.Major {
		def.Majors = append(def.Majors, rules.MajorDefinition{Abbreviation: m.Abbreviation, Name: m.Name})
	}
	for _, t := range f.Trains {
		def.Trains = append(def.Trains, rules.TrainDefinition{
			Type:      t.Type,
			Count:     t.Count,
			FaceValue: t.FaceValue,
			RustedBy:  t.RustedBy,
		})
	}
	return def, nil
}

// AvailableVariants lists the built-in variants and those found in dir
func AvailableVariants(dir string) ([]string, error) {
	seen := make(map[string]bool)
	entries, err := builtinVariants.ReadDir("games")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		seen[strings.TrimSuffix(e.Name(), ".yaml")] = true
	}
	if dir != "" {
		files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			seen[strings.TrimSuffix(filepath.Base(f), ".yaml")] = true
		}
	}

	variants := make([]string, 0, len(seen))
	for name := range seen {
		variants = append(variants, name)
	}
	sort.Strings(variants)
	return variants, nil
}

func variantFile(variant, dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	path := filepath.Join(dir, variant+".yaml")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func intKeys(in map[string]int) (map[int]int, error) {
	out := make(map[int]int, len(in))
	for k, v := range in {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("key %q is not a number", k)
		}
		out[n] = v
	}
	return out, nil
}
