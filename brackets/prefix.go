package brackets

import "github.com/Nosajool/vct-manager-sub005/models"

// ApplyIDPrefix возвращает копию структуры, в которой каждый matchId,
// roundId и все ссылки источников и маршрутов переписаны с префиксом
// prefix + "_". Перепись обязана быть согласованной по всем ссылкам, иначе
// пропагация победителей ломается. Используется, чтобы параллельные
// турниры никогда не пересекались по идентификаторам матчей.
func ApplyIDPrefix(b models.BracketStructure, prefix string) models.BracketStructure {
	if prefix == "" {
		return b.Clone()
	}
	out := b.Clone()
	forEachMatch(&out, func(m *models.BracketMatch) {
		m.MatchID = prefix + "_" + m.MatchID
		m.RoundID = prefix + "_" + m.RoundID
		if m.TeamASource.MatchID != "" {
			m.TeamASource.MatchID = prefix + "_" + m.TeamASource.MatchID
		}
		if m.TeamBSource.MatchID != "" {
			m.TeamBSource.MatchID = prefix + "_" + m.TeamBSource.MatchID
		}
		if m.WinnerDestination.MatchID != "" {
			m.WinnerDestination.MatchID = prefix + "_" + m.WinnerDestination.MatchID
		}
		if m.LoserDestination.MatchID != "" {
			m.LoserDestination.MatchID = prefix + "_" + m.LoserDestination.MatchID
		}
	})
	for _, rounds := range [][]models.BracketRound{out.Upper, out.Middle, out.Lower} {
		for i := range rounds {
			rounds[i].RoundID = prefix + "_" + rounds[i].RoundID
		}
	}
	return out
}

// IDPrefix возвращает 12-символьный суффикс идентификатора турнира,
// используемый как префикс идентификаторов матчей.
func IDPrefix(tournamentID string) string {
	if len(tournamentID) <= 12 {
		return tournamentID
	}
	return tournamentID[len(tournamentID)-12:]
}
