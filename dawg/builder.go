package dawg

import (
	"sort"
)

// Node - представление узла префиксного дерева в оперативной памяти.
// Используется только на этапе построения, затем дерево "сплющивается" в Graph.
type Node struct {
	Children map[rune]*Node // Дочерние узлы по символу.
	Payload  []uint32       // Полезная нагрузка, накопленная для ключа.
	IsFinal  bool           // Является ли этот узел концом ключа.
}

// Builder собирает граф из набора ключей с полезной нагрузкой.
// Дерево не минимизируется: для тестовых и небольших словарей этого достаточно.
type Builder struct {
	root *Node
}

// NewBuilder создает пустой построитель.
func NewBuilder() *Builder {
	return &Builder{root: &Node{Children: make(map[rune]*Node)}}
}

// Add добавляет ключ и дописывает к его payload-у значения values.
// Повторный вызов для того же ключа расширяет payload.
func (b *Builder) Add(key string, values ...uint32) {
	current := b.root
	for _, char := range key {
		next, ok := current.Children[char]
		if !ok {
			next = &Node{Children: make(map[rune]*Node)}
			current.Children[char] = next
		}
		current = next
	}
	current.IsFinal = true
	current.Payload = append(current.Payload, values...)
}

// Build "сплющивает" дерево: узлы нумеруются обходом в ширину,
// ребра каждого узла сортируются по символу для бинарного поиска.
func (b *Builder) Build() *Graph {
	g := &Graph{}
	queue := []*Node{b.root}

	for head := 0; head < len(queue); head++ {
		node := queue[head]

		chars := make([]rune, 0, len(node.Children))
		for char := range node.Children {
			chars = append(chars, char)
		}
		sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

		flat := FlatNode{
			PayloadIdx: uint32(len(g.payloads)),
			PayloadLen: uint16(len(node.Payload)),
			EdgesIdx:   uint32(len(g.edges)),
			EdgesLen:   uint16(len(chars)),
		}
		if node.IsFinal {
			flat.Final = 1
		}
		g.payloads = append(g.payloads, node.Payload...)

		for _, char := range chars {
			child := node.Children[char]
			g.edges = append(g.edges, FlatEdge{Char: char, NodeID: uint32(len(queue))})
			queue = append(queue, child)
		}
		g.nodes = append(g.nodes, flat)
	}
	return g
}
