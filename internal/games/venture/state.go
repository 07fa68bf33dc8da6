package venture

import (
	"github.com/partybox-games/roomserver/internal/model"
)

// Game phases, strictly linear within a round with loop-back at the
// round boundary: planning → investment → draft → resolution →
// cleanup → planning.
const (
	PhasePlanning   model.Phase = "planning"
	PhaseInvestment model.Phase = "investment"
	PhaseDraft      model.Phase = "draft"
	PhaseResolution model.Phase = "resolution"
	PhaseCleanup    model.Phase = "cleanup"
)

// Sectors a startup can bet on
var Sectors = []string{"tech", "food", "energy", "retail"}

// StartingFunds is each player's capital at game start
const StartingFunds = 100

// NotInvested marks a player who has not committed funds this round
const NotInvested = -1

// Card is one asset available for drafting
type Card struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Yield  int    `json:"yield"`
}

// PlayerState is one player's holdings and per-round choices
type PlayerState struct {
	ID         model.PlayerID `json:"id"`
	Funds      int            `json:"funds"`
	Plan       string         `json:"plan"`
	Investment int            `json:"investment"`
	Portfolio  []Card         `json:"portfolio"`
}

// Resolution records the customer-demand draw and payouts of the most
// recently resolved round
type Resolution struct {
	Demand  string                 `json:"demand"`
	Payouts map[model.PlayerID]int `json:"payouts"`
}

// State is the full game state. Seat order is fixed at game start and
// drives the draft turn order.
type State struct {
	Round          int             `json:"round"`
	Phase          model.Phase     `json:"phase"`
	Players        []PlayerState   `json:"players"`
	Market         []Card          `json:"market"`
	Deck           []Card          `json:"deck"`
	TurnIdx        int             `json:"turnIdx"`
	LastResolution *Resolution     `json:"lastResolution,omitempty"`
}

// player returns the state of the given player, or nil
func (s *State) player(id model.PlayerID) *PlayerState {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// currentDrafter returns the player whose draft pick it is
func (s *State) currentDrafter() model.PlayerID {
	if s.TurnIdx < 0 || s.TurnIdx >= len(s.Players) {
		return ""
	}
	return s.Players[s.TurnIdx].ID
}

// allPlanned reports whether every player has locked in a plan
func (s *State) allPlanned() bool {
	for i := range s.Players {
		if s.Players[i].Plan == "" {
			return false
		}
	}
	return true
}

// allInvested reports whether every player has committed funds
func (s *State) allInvested() bool {
	for i := range s.Players {
		if s.Players[i].Investment == NotInvested {
			return false
		}
	}
	return true
}

// clone deep-copies the state so a reducer never mutates its input
func (s State) clone() State {
	next := s
	next.Players = make([]PlayerState, len(s.Players))
	for i, p := range s.Players {
		next.Players[i] = p
		next.Players[i].Portfolio = append([]Card(nil), p.Portfolio...)
	}
	next.Market = append([]Card(nil), s.Market...)
	next.Deck = append([]Card(nil), s.Deck...)
	if s.LastResolution != nil {
		res := Resolution{
			Demand:  s.LastResolution.Demand,
			Payouts: make(map[model.PlayerID]int, len(s.LastResolution.Payouts)),
		}
		for id, amount := range s.LastResolution.Payouts {
			res.Payouts[id] = amount
		}
		next.LastResolution = &res
	}
	return next
}

// baseDeck returns the asset cards the deck is built from
func baseDeck() []Card {
	return []Card{
		{Name: "Garage Startup", Sector: "tech", Yield: 8},
		{Name: "App Studio", Sector: "tech", Yield: 12},
		{Name: "Chip Fab", Sector: "tech", Yield: 18},
		{Name: "Cloud Platform", Sector: "tech", Yield: 15},
		{Name: "Dev Bootcamp", Sector: "tech", Yield: 6},
		{Name: "AI Lab", Sector: "tech", Yield: 20},
		{Name: "Food Truck", Sector: "food", Yield: 6},
		{Name: "Corner Bakery", Sector: "food", Yield: 8},
		{Name: "Meal Kits", Sector: "food", Yield: 12},
		{Name: "Vertical Farm", Sector: "food", Yield: 15},
		{Name: "Ghost Kitchen", Sector: "food", Yield: 10},
		{Name: "Craft Brewery", Sector: "food", Yield: 14},
		{Name: "Solar Field", Sector: "energy", Yield: 16},
		{Name: "Wind Coop", Sector: "energy", Yield: 12},
		{Name: "Battery Plant", Sector: "energy", Yield: 18},
		{Name: "Microgrid", Sector: "energy", Yield: 10},
		{Name: "Geothermal Well", Sector: "energy", Yield: 14},
		{Name: "Hydrogen Hub", Sector: "energy", Yield: 20},
		{Name: "Pop-up Shop", Sector: "retail", Yield: 6},
		{Name: "Thrift Chain", Sector: "retail", Yield: 10},
		{Name: "Sneaker Resale", Sector: "retail", Yield: 12},
		{Name: "Garden Center", Sector: "retail", Yield: 8},
		{Name: "Record Store", Sector: "retail", Yield: 9},
		{Name: "Board Game Cafe", Sector: "retail", Yield: 11},
	}
}

// validSector reports whether the given sector exists
func validSector(sector string) bool {
	for _, s := range Sectors {
		if s == sector {
			return true
		}
	}
	return false
}
