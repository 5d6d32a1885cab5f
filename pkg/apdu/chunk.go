package apdu

// Positional flags carried by every frame of a chunked transfer.
const (
	// P1
	FirstChunk byte = 0x01
	NextChunk  byte = 0x02

	// P2
	SingleFrame byte = 0x01
	MultiFrame  byte = 0x02
)

// Chunk describes one slice of a payload split by Plan.
type Chunk struct {
	Offset int
	Length int
	First  bool
	Last   bool
}

// IsSingleFrame reports whether a payload of the given length travels in one frame.
// A payload of exactly MaxChunkSize bytes is not single-frame.
func IsSingleFrame(total int) bool {
	return total < MaxChunkSize
}

// Plan splits a payload of total bytes into chunks of at most MaxChunkSize bytes.
// An empty payload yields no chunks.
func Plan(total int) []Chunk {
	var chunks []Chunk

	offset := 0
	for offset != total {
		last := total-offset < MaxChunkSize
		size := MaxChunkSize
		if last {
			size = total - offset
		}

		chunks = append(chunks, Chunk{
			Offset: offset,
			Length: size,
			First:  offset == 0,
			Last:   offset+size == total,
		})
		offset += size
	}

	return chunks
}

// ChunkCommands builds the frames carrying payload for a chunked instruction.
//
// The first frame announces the total payload length in Lc, every later frame only its own size.
// The receiving firmware relies on this asymmetry.
func ChunkCommands(ins InsCode, payload []byte) []*CommandAPDU {
	p2 := MultiFrame
	if IsSingleFrame(len(payload)) {
		p2 = SingleFrame
	}

	plan := Plan(len(payload))
	cmds := make([]*CommandAPDU, 0, len(plan))

	for _, c := range plan {
		p1 := NextChunk
		if c.First {
			p1 = FirstChunk
		}

		cmd := NewCommandAPDU(ins, p1, p2, payload[c.Offset:c.Offset+c.Length])
		if c.First {
			cmd.Lc = uint32(len(payload))
		}
		cmds = append(cmds, cmd)
	}

	return cmds
}
