package domain

// Wire keywords of the engine protocol.
const (
	KeywordTurn    = "turn"
	KeywordReady   = "ready"
	KeywordGo      = "go"
	KeywordEnd     = "end"
	KeywordPlayers = "players"
	KeywordScore   = "score"
	KeywordOrder   = "o"
)

// Record tags of a world snapshot block.
const (
	TagWater   = "w"
	TagFood    = "f"
	TagHill    = "h"
	TagLiveAnt = "a"
	TagDeadAnt = "d"
)

// Game parameter keys of the turn-0 block.
const (
	ParamLoadTime      = "loadtime"
	ParamTurnTime      = "turntime"
	ParamRows          = "rows"
	ParamCols          = "cols"
	ParamTurns         = "turns"
	ParamViewRadius2   = "viewradius2"
	ParamAttackRadius2 = "attackradius2"
	ParamSpawnRadius2  = "spawnradius2"
	ParamPlayerSeed    = "player_seed"
)
