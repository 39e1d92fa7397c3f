package mahjong

import "fmt"

type GroupKind uint8

const (
	GroupPair     GroupKind = iota // 将
	GroupTriplet                   // 刻子
	GroupSequence                  // 顺子
)

// Group 和牌结构中的一组牌。Tile 对将/刻子是该牌本身，对顺子是起始牌
type Group struct {
	Kind GroupKind
	Tile TileType
}

func (g Group) Tiles() Hand {
	switch g.Kind {
	case GroupPair:
		return Hand{g.Tile, g.Tile}
	case GroupTriplet:
		return Hand{g.Tile, g.Tile, g.Tile}
	case GroupSequence:
		return Hand{g.Tile, g.Tile + 1, g.Tile + 2}
	default:
		panic(fmt.Sprintf("mahjong: unknown group kind %d", g.Kind))
	}
}

func (g Group) String() string {
	switch g.Kind {
	case GroupPair:
		return fmt.Sprintf("将[%s]", g.Tiles())
	case GroupTriplet:
		return fmt.Sprintf("刻[%s]", g.Tiles())
	case GroupSequence:
		return fmt.Sprintf("顺[%s]", g.Tiles())
	default:
		panic(fmt.Sprintf("mahjong: unknown group kind %d", g.Kind))
	}
}
