package ast

type (
	// главные сущности
	TypeID    uint32
	PatternID uint32
	ExprID    uint32
	CondID    uint32
	StmtID    uint32
	DeclID    uint32
	// индекс в per-kind арене
	PayloadID uint32
)

const (
	NoTypeID    TypeID    = 0
	NoPatternID PatternID = 0
	NoExprID    ExprID    = 0
	NoCondID    CondID    = 0
	NoStmtID    StmtID    = 0
	NoDeclID    DeclID    = 0
	NoPayloadID PayloadID = 0
)

func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id PatternID) IsValid() bool { return id != NoPatternID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id CondID) IsValid() bool    { return id != NoCondID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
