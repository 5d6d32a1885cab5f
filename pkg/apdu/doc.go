/*
Package apdu implements the command/response framing used by the Cardano application running on a
hardware signing device.

The device speaks a Ledger-style variant of ISO 7816 APDUs. Every command carries a fixed 8-byte header
followed by an optional payload, and every response ends with a 2-byte Status Word.

# Command Layout

	byte 0     CLA  Instruction class, always 0x80 (proprietary)
	byte 1     INS  Instruction opcode (see InsCode)
	byte 2     P1   First parameter
	byte 3     P2   Second parameter
	byte 4..7  Lc   Big-endian 32-bit length field
	byte 8..   Data Payload

# Chunked Transfers

A single exchange is capped at MaxFrameSize bytes, so payloads longer than MaxChunkSize bytes are split
across several frames (see Plan). A payload of exactly MaxChunkSize bytes still travels in one frame,
flagged as multi-frame. The device keeps no memory between exchanges other than what each
frame announces in P1/P2/Lc:

  - P1 = 0x01 on the first frame, 0x02 on every continuation.
  - P2 = 0x01 when the payload fits one frame, 0x02 otherwise.
  - Lc = total payload length on the first frame, the frame's own chunk size afterwards.

# Status Words

0x9000 is the only success value. 0x6E00 means the Cardano application is not running and 0x6D00 that
the instruction is not compiled into the running firmware (expected for diagnostic instructions on
production builds). See Classify for the mapping of arbitrary errors onto these categories.

# Usage Example

	client := apdu.NewClient(exchanger)

	trace, err := client.Transfer(apdu.INS_SET_TX, txBytes)
	if err != nil {
	    log.Println(apdu.Classify(err))
	    return
	}

	fmt.Printf("%d frames, final body %X\n", len(trace), trace.Last().Response.Data)
*/
package apdu
