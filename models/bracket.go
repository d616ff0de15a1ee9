package models

// BracketFormat — тип турнирной сетки.
type BracketFormat string

const (
	FormatSingleElim     BracketFormat = "single_elim"
	FormatDoubleElim     BracketFormat = "double_elim"
	FormatTripleElim     BracketFormat = "triple_elim"
	FormatRoundRobin     BracketFormat = "round_robin"
	FormatSwissToPlayoff BracketFormat = "swiss_to_playoff"
)

// BracketType — ветка сетки (количество допустимых поражений).
type BracketType string

const (
	BracketUpper  BracketType = "upper"
	BracketMiddle BracketType = "middle"
	BracketLower  BracketType = "lower"
)

// BracketMatchStatus — статус матча в сетке. Переходы строго монотонные:
// pending → ready → completed.
type BracketMatchStatus string

const (
	MatchPending   BracketMatchStatus = "pending"
	MatchReady     BracketMatchStatus = "ready"
	MatchCompleted BracketMatchStatus = "completed"
)

// SlotSourceKind — откуда слот матча получает команду.
type SlotSourceKind string

const (
	SourceSeed   SlotSourceKind = "seed"
	SourceWinner SlotSourceKind = "winner"
	SourceLoser  SlotSourceKind = "loser"
	SourceBye    SlotSourceKind = "bye"
)

// SlotSource описывает источник команды для слота матча.
// Заполнено ровно одно из полей в зависимости от Kind.
type SlotSource struct {
	Kind    SlotSourceKind `json:"kind"`
	Seed    int            `json:"seed,omitempty"`
	MatchID string         `json:"match_id,omitempty"`
}

func SeedSource(seed int) SlotSource      { return SlotSource{Kind: SourceSeed, Seed: seed} }
func WinnerSource(matchID string) SlotSource {
	return SlotSource{Kind: SourceWinner, MatchID: matchID}
}
func LoserSource(matchID string) SlotSource {
	return SlotSource{Kind: SourceLoser, MatchID: matchID}
}
func ByeSource() SlotSource { return SlotSource{Kind: SourceBye} }

// DestinationKind — куда направляется победитель или проигравший матча.
type DestinationKind string

const (
	DestMatch      DestinationKind = "match"
	DestChampion   DestinationKind = "champion"
	DestPlacement  DestinationKind = "placement"
	DestEliminated DestinationKind = "eliminated"
)

// Destination описывает маршрут команды после матча.
type Destination struct {
	Kind      DestinationKind `json:"kind"`
	MatchID   string          `json:"match_id,omitempty"`
	Placement int             `json:"placement,omitempty"`
}

func MatchDestination(matchID string) Destination {
	return Destination{Kind: DestMatch, MatchID: matchID}
}
func ChampionDestination() Destination       { return Destination{Kind: DestChampion} }
func PlacementDestination(n int) Destination { return Destination{Kind: DestPlacement, Placement: n} }
func EliminatedDestination() Destination     { return Destination{Kind: DestEliminated} }

// BracketMatch — один матч сетки.
type BracketMatch struct {
	MatchID string `json:"match_id"`
	RoundID string `json:"round_id"`

	TeamASource SlotSource `json:"team_a_source"`
	TeamBSource SlotSource `json:"team_b_source"`

	TeamAID string `json:"team_a_id,omitempty"`
	TeamBID string `json:"team_b_id,omitempty"`

	Status BracketMatchStatus `json:"status"`

	WinnerID string       `json:"winner_id,omitempty"`
	LoserID  string       `json:"loser_id,omitempty"`
	Result   *MatchResult `json:"result,omitempty"`

	WinnerDestination Destination `json:"winner_destination"`
	LoserDestination  Destination `json:"loser_destination"`
}

// BracketRound — раунд внутри одной ветки сетки.
type BracketRound struct {
	RoundID     string         `json:"round_id"`
	RoundNumber int            `json:"round_number"`
	BracketType BracketType    `json:"bracket_type"`
	Matches     []BracketMatch `json:"matches"`
}

// BracketStructure — вся турнирная сетка. Значение: каждая операция
// продвижения возвращает новую структуру, не изменяя исходную.
type BracketStructure struct {
	Format     BracketFormat  `json:"format"`
	Upper      []BracketRound `json:"upper"`
	Middle     []BracketRound `json:"middle,omitempty"`
	Lower      []BracketRound `json:"lower,omitempty"`
	GrandFinal *BracketMatch  `json:"grand_final,omitempty"`
}

// BracketStatus — агрегированный статус сетки.
type BracketStatus string

const (
	BracketNotStarted BracketStatus = "not_started"
	BracketInProgress BracketStatus = "in_progress"
	BracketCompleted  BracketStatus = "completed"
)

// Clone возвращает глубокую копию структуры.
func (b BracketStructure) Clone() BracketStructure {
	out := BracketStructure{Format: b.Format}
	out.Upper = cloneRounds(b.Upper)
	out.Middle = cloneRounds(b.Middle)
	out.Lower = cloneRounds(b.Lower)
	if b.GrandFinal != nil {
		gf := *b.GrandFinal
		out.GrandFinal = &gf
	}
	return out
}

func cloneRounds(rounds []BracketRound) []BracketRound {
	if rounds == nil {
		return nil
	}
	out := make([]BracketRound, len(rounds))
	for i, r := range rounds {
		out[i] = r
		out[i].Matches = make([]BracketMatch, len(r.Matches))
		copy(out[i].Matches, r.Matches)
	}
	return out
}
