// Пакет dawg содержит автомат словаря в "плоском" представлении.
// Формат файла рассчитан на Zero-Copy загрузку через mmap: узлы, ребра и
// полезная нагрузка лежат в файле непрерывными массивами записей фиксированного
// размера, и после отображения в память срезы указывают прямо на страницы ОС.
package dawg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// fileMagic - сигнатура файла автомата.
var fileMagic = [8]byte{'F', 'M', 'D', 'A', 'W', 'G', '0', '1'}

// ErrBadMagic возвращается, если файл не является автоматом fuzzymorph.
var ErrBadMagic = errors.New("неверная сигнатура файла автомата")

// FlatNode - "плоское" представление узла.
// Вместо указателей используются индексы в общих массивах ребер и payload-ов.
// Размер записи ровно 16 байт, без неявного выравнивания.
type FlatNode struct {
	PayloadIdx uint32 // Начало payload-а узла в массиве payloads.
	EdgesIdx   uint32 // Начало ребер узла в массиве edges.
	PayloadLen uint16 // Количество слов payload-а.
	EdgesLen   uint16 // Количество исходящих ребер.
	Final      uint16 // 1, если узел завершает ключ.
	_          uint16
}

// IsFinal сообщает, завершает ли узел какой-либо ключ.
func (n FlatNode) IsFinal() bool {
	return n.Final != 0
}

// FlatEdge - "плоское" представление ребра графа.
type FlatEdge struct {
	Char   rune   // Символ на ребре.
	NodeID uint32 // ID дочернего узла.
}

// Header - заголовок бинарного файла автомата.
type Header struct {
	Magic          [8]byte
	NodesOffset    int64
	NodesCount     int64
	EdgesOffset    int64
	EdgesCount     int64
	PayloadsOffset int64
	PayloadsCount  int64
}

// Graph - автомат, готовый к поиску.
// Данные либо построены в памяти (Builder), либо отображены из файла (Load).
// После создания граф не изменяется и безопасен для конкурентного чтения.
type Graph struct {
	nodes    []FlatNode
	edges    []FlatEdge
	payloads []uint32

	// Ссылка на mmap-объект, чтобы память оставалась доступной.
	mmapFile mmap.MMap
}

// Load отображает файл автомата в память и создает "виртуальные" срезы
// поверх отображения без копирования данных.
func Load(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	mmapFile, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("ошибка mmap.Map: %w", err)
	}

	g, err := fromMapped(mmapFile)
	if err != nil {
		_ = mmapFile.Unmap()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func fromMapped(data mmap.MMap) (*Graph, error) {
	var header Header
	headerSize := binary.Size(header)
	if len(data) < headerSize {
		return nil, errors.New("файл слишком мал для заголовка")
	}
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("ошибка чтения заголовка: %w", err)
	}
	if header.Magic != fileMagic {
		return nil, ErrBadMagic
	}

	nodes, err := section[FlatNode](data, header.NodesOffset, header.NodesCount)
	if err != nil {
		return nil, fmt.Errorf("узлы: %w", err)
	}
	edges, err := section[FlatEdge](data, header.EdgesOffset, header.EdgesCount)
	if err != nil {
		return nil, fmt.Errorf("ребра: %w", err)
	}
	payloads, err := section[uint32](data, header.PayloadsOffset, header.PayloadsCount)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if len(nodes) == 0 {
		return nil, errors.New("автомат не содержит корневого узла")
	}

	return &Graph{
		nodes:    nodes,
		edges:    edges,
		payloads: payloads,
		mmapFile: data,
	}, nil
}

// section вырезает из отображения массив записей типа T.
func section[T any](data []byte, offset, count int64) ([]T, error) {
	var t T
	size := int64(unsafe.Sizeof(t))
	end := offset + count*size
	if offset < 0 || count < 0 || end > int64(len(data)) {
		return nil, fmt.Errorf("секция [%d, %d) выходит за пределы файла (%d байт)", offset, end, len(data))
	}
	return BytesToSlice[T](data[offset:end]), nil
}

// BytesToSlice - "небезопасная" функция, которая создает срез,
// указывающий на область байт, без копирования самих данных.
func BytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/size)
}

// Close освобождает отображение файла. Для графов, построенных в памяти, ничего не делает.
func (g *Graph) Close() error {
	if g.mmapFile == nil {
		return nil
	}
	err := g.mmapFile.Unmap()
	g.mmapFile = nil
	g.nodes, g.edges, g.payloads = nil, nil, nil
	return err
}

// WriteTo сериализует граф в формат, который читает Load.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	header := Header{Magic: fileMagic}
	offset := int64(binary.Size(header))
	header.NodesOffset, header.NodesCount = offset, int64(len(g.nodes))
	offset += header.NodesCount * int64(unsafe.Sizeof(FlatNode{}))
	header.EdgesOffset, header.EdgesCount = offset, int64(len(g.edges))
	offset += header.EdgesCount * int64(unsafe.Sizeof(FlatEdge{}))
	header.PayloadsOffset, header.PayloadsCount = offset, int64(len(g.payloads))
	offset += header.PayloadsCount * 4

	cw := &countingWriter{w: w}
	for _, part := range []any{header, g.nodes, g.edges, g.payloads} {
		if err := binary.Write(cw, binary.LittleEndian, part); err != nil {
			return cw.n, fmt.Errorf("ошибка записи автомата: %w", err)
		}
	}
	if cw.n != offset {
		return cw.n, fmt.Errorf("записано %d байт, ожидалось %d", cw.n, offset)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Get возвращает payload ключа при точном совпадении.
func (g *Graph) Get(key string) ([]uint32, bool) {
	current := uint32(0)
	for _, char := range key {
		child, ok := g.child(current, char)
		if !ok {
			return nil, false
		}
		current = child
	}
	if !g.nodes[current].IsFinal() {
		return nil, false
	}
	return g.payload(current), true
}

// Len возвращает количество узлов графа.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// child ищет дочерний узел по символу.
// Ребра одного узла лежат непрерывным блоком и отсортированы, поэтому поиск бинарный.
func (g *Graph) child(nodeIndex uint32, char rune) (uint32, bool) {
	searchSlice := g.edgesOf(nodeIndex)
	if len(searchSlice) == 0 {
		return 0, false
	}
	i := sort.Search(len(searchSlice), func(i int) bool { return searchSlice[i].Char >= char })
	if i < len(searchSlice) && searchSlice[i].Char == char {
		return searchSlice[i].NodeID, true
	}
	return 0, false
}

func (g *Graph) edgesOf(nodeIndex uint32) []FlatEdge {
	node := g.nodes[nodeIndex]
	return g.edges[node.EdgesIdx : node.EdgesIdx+uint32(node.EdgesLen)]
}

func (g *Graph) payload(nodeIndex uint32) []uint32 {
	node := g.nodes[nodeIndex]
	return g.payloads[node.PayloadIdx : node.PayloadIdx+uint32(node.PayloadLen)]
}
