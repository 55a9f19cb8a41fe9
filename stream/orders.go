// Copyright (C) 2017-2025 Steve Merrony
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
//

package stream

import "tn3270/ps"

// processOrders walks one order/data stream (the portion of a
// Write/Erase-Write record following the WCC), applying each recognized
// order and writing any plain data byte directly to the current buffer
// address (tnz.py's "_process_orders_data": anything that isn't an
// order byte is data).
func (in *Interpreter) processOrders(data []byte) error {
	size := in.ps.Size()
	i := 0
	ptErase := false // set by a data write, consulted and cleared by the next order
	for i < len(data) {
		b := data[i]
		switch b {
		case OrderSBA:
			if i+3 > len(data) {
				return &ProtocolError{Phase: "order", Detail: "SBA truncated", Byte: b}
			}
			in.bufAddr = ps.DecodeAddress([2]byte{data[i+1], data[i+2]}, size)
			ptErase = false
			i += 3

		case OrderSF:
			if i+2 > len(data) {
				return &ProtocolError{Phase: "order", Detail: "SF truncated", Byte: b}
			}
			in.ps.WriteFieldAttr(in.bufAddr, ps.Bit6(data[i+1]))
			in.bufAddr = (in.bufAddr + 1) % size
			ptErase = false
			i += 2

		case OrderSFE:
			next, err := in.processSFE(data, i)
			if err != nil {
				return err
			}
			i = next
			ptErase = false

		case OrderSA:
			if i+3 > len(data) {
				return &ProtocolError{Phase: "order", Detail: "SA truncated", Byte: b}
			}
			if err := in.setAttribute(data[i+1], data[i+2]); err != nil {
				return err
			}
			i += 3
			ptErase = false

		case OrderIC:
			in.ps.CursorSet(in.bufAddr)
			ptErase = false
			i++

		case OrderPT:
			// Following a data write, PT nulls from the current address to
			// the end of the field it sits in before tabbing, so it also
			// acts as an erase-to-field-end (tnz.py's _process_order_0x5,
			// __pt_erase).
			if ptErase && !in.ps.CellAt(in.bufAddr).IsFieldAttribute {
				in.ps.EraseEOF(in.bufAddr)
			}
			if next, ok := in.ps.NextUnprotected(in.bufAddr); ok {
				in.bufAddr = next
			}
			ptErase = false
			i++

		case OrderRA:
			next, err := in.processRA(data, i, size)
			if err != nil {
				return err
			}
			i = next
			ptErase = false

		case OrderEUA:
			if i+3 > len(data) {
				return &ProtocolError{Phase: "order", Detail: "EUA truncated", Byte: b}
			}
			stop := ps.DecodeAddress([2]byte{data[i+1], data[i+2]}, size)
			in.ps.EraseUnprotectedToAddress(in.bufAddr, stop)
			in.bufAddr = stop
			ptErase = false
			i += 3

		case OrderMF:
			next, err := in.processMF(data, i)
			if err != nil {
				return err
			}
			i = next
			ptErase = false

		case OrderGE:
			if i+2 > len(data) {
				return &ProtocolError{Phase: "order", Detail: "GE truncated", Byte: b}
			}
			in.ps.WriteCell(in.bufAddr, data[i+1], tagCharSet(ps.CharSetAPL))
			in.bufAddr = (in.bufAddr + 1) % size
			ptErase = true
			i += 2

		default:
			in.ps.WriteCell(in.bufAddr, b)
			in.bufAddr = (in.bufAddr + 1) % size
			ptErase = true
			i++
		}
	}
	return nil
}

// processRA handles Repeat to Address: a 2-byte stop address, then
// either a 1-byte repeat character or a GE-prefixed 2-byte one.
func (in *Interpreter) processRA(data []byte, i, size int) (int, error) {
	if i+4 > len(data) {
		return 0, &ProtocolError{Phase: "order", Detail: "RA truncated", Byte: OrderRA}
	}
	stop := ps.DecodeAddress([2]byte{data[i+1], data[i+2]}, size)
	dataByte := data[i+3]
	next := i + 4
	if dataByte == OrderGE {
		if next >= len(data) {
			return 0, &ProtocolError{Phase: "order", Detail: "RA/GE truncated", Byte: OrderRA}
		}
		dataByte = data[next]
		next++
	}
	n := stop - in.bufAddr
	if n < 0 {
		n += size
	}
	if n == 0 {
		n = size
	}
	for k := 0; k < n; k++ {
		in.ps.WriteCell((in.bufAddr+k)%size, dataByte)
	}
	in.bufAddr = stop
	return next, nil
}

// processSFE handles Start Field Extended: a pair count then that many
// (type, value) attribute pairs, one of which (0xc0) carries the basic
// 3270 field attribute byte.
func (in *Interpreter) processSFE(data []byte, i int) (int, error) {
	size := in.ps.Size()
	if i+2 > len(data) {
		return 0, &ProtocolError{Phase: "order", Detail: "SFE truncated", Byte: OrderSFE}
	}
	var fattr byte
	next, err := in.parseAttrPairs(data, i+1, &fattr)
	if err != nil {
		return 0, err
	}
	in.ps.WriteFieldAttr(in.bufAddr, ps.Bit6(fattr))
	in.bufAddr = (in.bufAddr + 1) % size
	return next, nil
}

// processMF handles Modify Field: like SFE's pairs, but applied to the
// field attribute already present at the current buffer address rather
// than starting a new field.
func (in *Interpreter) processMF(data []byte, i int) (int, error) {
	if i+2 > len(data) {
		return 0, &ProtocolError{Phase: "order", Detail: "MF truncated", Byte: OrderMF}
	}
	if !in.ps.CellAt(in.bufAddr).IsFieldAttribute {
		return 0, &ProtocolError{Phase: "order", Detail: "MF at non-field position", Byte: OrderMF}
	}
	var fattr byte
	next, err := in.parseAttrPairs(data, i+1, &fattr)
	if err != nil {
		return 0, err
	}
	if fattr != 0 {
		in.ps.WriteFieldAttr(in.bufAddr, ps.Bit6(fattr))
	}
	in.bufAddr = (in.bufAddr + 1) % in.ps.Size()
	return next, nil
}

// parseAttrPairs reads the pair-count byte at data[idx] followed by
// that many (type, value) pairs, applying the ones this interpreter
// understands (0xc0 basic attribute is written into *fattr for the
// caller to apply; the rest are processed via setAttribute).
func (in *Interpreter) parseAttrPairs(data []byte, idx int, fattr *byte) (int, error) {
	if idx >= len(data) {
		return 0, &ProtocolError{Phase: "order", Detail: "attribute pairs truncated", Byte: OrderSFE}
	}
	count := int(data[idx])
	start := idx + 1
	stop := start + count*2
	if stop > len(data) {
		return 0, &ProtocolError{Phase: "order", Detail: "attribute pairs truncated", Byte: OrderSFE}
	}
	for p := start; p < stop; p += 2 {
		typ, val := data[p], data[p+1]
		if typ == 0xc0 {
			*fattr = val
			continue
		}
		if err := in.setAttribute(typ, val); err != nil {
			return 0, err
		}
	}
	return stop, nil
}

// setAttribute applies a Set Attribute (SA) type/value pair to the
// current extended-attribute context (the running EH/CS/FG/BG state),
// per the Data Stream Programmer's Reference's "Set Attribute" order.
// The context is only recorded: cells written afterwards do not take
// these values.
func (in *Interpreter) setAttribute(cat, cav byte) error {
	switch cat {
	case 0x00:
		in.procEH, in.procCS, in.procFG, in.procBG = 0, 0, 0, 0
	case 0x41:
		in.procEH = cav
	case 0x42:
		in.procFG = cav
	case 0x43:
		in.procCS = cav
	case 0x45:
		in.procBG = cav
	default:
		return &ProtocolError{Phase: "order", Detail: "bad character attribute type", Byte: cat}
	}
	return nil
}

// tagCharSet returns a ps.WriteCell ext function that stamps cs onto the
// written cell, so a decoder can later tell which code page the byte
// was drawn from.
func tagCharSet(cs byte) func(*ps.Cell) {
	return func(c *ps.Cell) { c.CharSet = &cs }
}
