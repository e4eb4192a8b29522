package model

import "fmt"

// BoardConfig holds the static track layout for one board size
type BoardConfig struct {
	Size             int
	TrackLength      int
	IncomePositions  []int // Sorted ascending
	LeatherPositions []int // Sorted ascending
}

var boardConfigs = map[int]BoardConfig{
	7: {
		Size:             7,
		TrackLength:      35,
		IncomePositions:  []int{5, 11, 17, 23, 29, 35},
		LeatherPositions: []int{8, 14, 20, 26, 32},
	},
	9: {
		Size:             9,
		TrackLength:      53,
		IncomePositions:  []int{5, 11, 17, 23, 29, 35, 41, 47, 53},
		LeatherPositions: []int{8, 18, 28, 38, 48},
	},
	11: {
		Size:             11,
		TrackLength:      70,
		IncomePositions:  []int{6, 12, 18, 24, 30, 36, 42, 48, 54, 60, 66, 70},
		LeatherPositions: []int{10, 24, 38, 52, 64},
	},
}

// SupportedBoardSizes lists the board sizes with a track layout
func SupportedBoardSizes() []int {
	return []int{7, 9, 11}
}

// LookupBoardConfig returns the track layout for a board size
func LookupBoardConfig(size int) (BoardConfig, error) {
	cfg, ok := boardConfigs[size]
	if !ok {
		return BoardConfig{}, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}
	cfg.IncomePositions = append([]int(nil), cfg.IncomePositions...)
	cfg.LeatherPositions = append([]int(nil), cfg.LeatherPositions...)
	return cfg, nil
}

// MustBoardConfig is LookupBoardConfig for sizes known to be valid
func MustBoardConfig(size int) BoardConfig {
	cfg, err := LookupBoardConfig(size)
	if err != nil {
		panic(err)
	}
	return cfg
}
