package games

import "math"

// Stats are the public track-record counters.
type Stats struct {
	TotalTips int
	Wins      int
	Losses    int
	Pending   int
	WinRate   float64 // Percent of settled tips won, one decimal place
}

func Summarize(list []Game) Stats {
	s := Stats{TotalTips: len(list)}
	for _, g := range list {
		switch g.Result {
		case ResultWin:
			s.Wins++
		case ResultLoss:
			s.Losses++
		default:
			s.Pending++
		}
	}
	if settled := s.Wins + s.Losses; settled > 0 {
		s.WinRate = math.Round(float64(s.Wins)/float64(settled)*1000) / 10
	}
	return s
}
