package interpreter

import (
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/registers"
)

type handler func(in *Interpreter, ins Instruction) error

// handlers contains one handler per instruction variant. A handler either
// fails before changing any state or applies all of its effects. The
// program counter is changed through in.next only.
var handlers = [opCount]handler{
	OpInvalid:   func(_ *Interpreter, ins Instruction) error { return unknownOpcode(ins.Opcode) },
	OpCls:       (*Interpreter).cls,
	OpRet:       (*Interpreter).ret,
	OpJp:        (*Interpreter).jp,
	OpCall:      (*Interpreter).call,
	OpSeImm:     (*Interpreter).seImm,
	OpSneImm:    (*Interpreter).sneImm,
	OpSeReg:     (*Interpreter).seReg,
	OpLdImm:     (*Interpreter).ldImm,
	OpAddImm:    (*Interpreter).addImm,
	OpLdReg:     (*Interpreter).ldReg,
	OpOr:        (*Interpreter).or,
	OpAnd:       (*Interpreter).and,
	OpXor:       (*Interpreter).xor,
	OpAddReg:    (*Interpreter).addReg,
	OpSub:       (*Interpreter).sub,
	OpShr:       (*Interpreter).shr,
	OpSubn:      (*Interpreter).subn,
	OpShl:       (*Interpreter).shl,
	OpSneReg:    (*Interpreter).sneReg,
	OpLdI:       (*Interpreter).ldI,
	OpJpV0:      (*Interpreter).jpV0,
	OpRnd:       (*Interpreter).rnd,
	OpDrw:       (*Interpreter).drw,
	OpSkp:       (*Interpreter).skp,
	OpSknp:      (*Interpreter).sknp,
	OpLdVxDT:    (*Interpreter).ldVxDT,
	OpLdVxK:     (*Interpreter).ldVxK,
	OpLdDTVx:    (*Interpreter).ldDTVx,
	OpLdSTVx:    (*Interpreter).ldSTVx,
	OpAddI:      (*Interpreter).addI,
	OpLdF:       (*Interpreter).ldF,
	OpLdB:       (*Interpreter).ldB,
	OpStoreRegs: (*Interpreter).storeRegs,
	OpLoadRegs:  (*Interpreter).loadRegs,
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// setFlag writes VF. It is called after the result register is written so
// that the flag wins when VF is the destination.
func (in *Interpreter) setFlag(b bool) {
	in.registers.V[registers.Flag] = boolToByte(b)
}

func (in *Interpreter) skipIf(cond bool) {
	if cond {
		in.next += 2
	}
}

func (in *Interpreter) cls(Instruction) error {
	in.display.Clear()
	in.render()
	return nil
}

func (in *Interpreter) ret(Instruction) error {
	address, err := in.registers.Stack.Pop()
	if err != nil {
		return err
	}
	in.next = address
	return nil
}

func (in *Interpreter) jp(ins Instruction) error {
	in.next = ins.NNN
	return nil
}

func (in *Interpreter) call(ins Instruction) error {
	if err := in.registers.Stack.Push(in.next); err != nil {
		return err
	}
	in.next = ins.NNN
	return nil
}

func (in *Interpreter) seImm(ins Instruction) error {
	in.skipIf(in.registers.V[ins.X] == ins.NN)
	return nil
}

func (in *Interpreter) sneImm(ins Instruction) error {
	in.skipIf(in.registers.V[ins.X] != ins.NN)
	return nil
}

func (in *Interpreter) seReg(ins Instruction) error {
	in.skipIf(in.registers.V[ins.X] == in.registers.V[ins.Y])
	return nil
}

func (in *Interpreter) sneReg(ins Instruction) error {
	in.skipIf(in.registers.V[ins.X] != in.registers.V[ins.Y])
	return nil
}

func (in *Interpreter) ldImm(ins Instruction) error {
	in.registers.V[ins.X] = ins.NN
	return nil
}

// addImm does not change VF on overflow.
func (in *Interpreter) addImm(ins Instruction) error {
	in.registers.V[ins.X] += ins.NN
	return nil
}

func (in *Interpreter) ldReg(ins Instruction) error {
	in.registers.V[ins.X] = in.registers.V[ins.Y]
	return nil
}

func (in *Interpreter) or(ins Instruction) error {
	in.registers.V[ins.X] |= in.registers.V[ins.Y]
	in.logicFlag()
	return nil
}

func (in *Interpreter) and(ins Instruction) error {
	in.registers.V[ins.X] &= in.registers.V[ins.Y]
	in.logicFlag()
	return nil
}

func (in *Interpreter) xor(ins Instruction) error {
	in.registers.V[ins.X] ^= in.registers.V[ins.Y]
	in.logicFlag()
	return nil
}

func (in *Interpreter) logicFlag() {
	if in.quirks.ResetFlagOnLogic {
		in.setFlag(false)
	}
}

func (in *Interpreter) addReg(ins Instruction) error {
	sum := uint16(in.registers.V[ins.X]) + uint16(in.registers.V[ins.Y])
	in.registers.V[ins.X] = byte(sum)
	in.setFlag(sum > 0xFF)
	return nil
}

// sub sets VF to 1 if no borrow occurred.
func (in *Interpreter) sub(ins Instruction) error {
	vx, vy := in.registers.V[ins.X], in.registers.V[ins.Y]
	in.registers.V[ins.X] = vx - vy
	in.setFlag(vx >= vy)
	return nil
}

func (in *Interpreter) subn(ins Instruction) error {
	vx, vy := in.registers.V[ins.X], in.registers.V[ins.Y]
	in.registers.V[ins.X] = vy - vx
	in.setFlag(vy >= vx)
	return nil
}

func (in *Interpreter) shiftSource(ins Instruction) byte {
	if in.quirks.ShiftUsesVY {
		return in.registers.V[ins.Y]
	}
	return in.registers.V[ins.X]
}

func (in *Interpreter) shr(ins Instruction) error {
	value := in.shiftSource(ins)
	in.registers.V[ins.X] = value >> 1
	in.setFlag(value&0x01 != 0)
	return nil
}

func (in *Interpreter) shl(ins Instruction) error {
	value := in.shiftSource(ins)
	in.registers.V[ins.X] = value << 1
	in.setFlag(value&0x80 != 0)
	return nil
}

func (in *Interpreter) ldI(ins Instruction) error {
	in.registers.I = ins.NNN
	return nil
}

func (in *Interpreter) jpV0(ins Instruction) error {
	offset := in.registers.V[0]
	if in.quirks.JumpUsesVX {
		offset = in.registers.V[ins.X]
	}
	in.next = ins.NNN + uint16(offset)
	return nil
}

func (in *Interpreter) rnd(ins Instruction) error {
	in.registers.V[ins.X] = in.hw.RandomByte() & ins.NN
	return nil
}

func (in *Interpreter) drw(ins Instruction) error {
	sprite, err := in.memory.ReadRange(in.registers.I, int(ins.N))
	if err != nil {
		return err
	}

	x := int(in.registers.V[ins.X])
	y := int(in.registers.V[ins.Y])
	collision := in.display.DrawSprite(x, y, sprite, in.quirks.edgeMode())
	in.setFlag(collision)
	in.render()
	return nil
}

func (in *Interpreter) skp(ins Instruction) error {
	in.skipIf(in.keypad.Pressed(in.registers.V[ins.X]))
	return nil
}

func (in *Interpreter) sknp(ins Instruction) error {
	in.skipIf(!in.keypad.Pressed(in.registers.V[ins.X]))
	return nil
}

func (in *Interpreter) ldVxDT(ins Instruction) error {
	in.registers.V[ins.X] = in.timers.Delay
	return nil
}

// ldVxK completes immediately if a key is pressed, otherwise it keeps the
// program counter on this instruction and switches to AwaitingKey.
func (in *Interpreter) ldVxK(ins Instruction) error {
	if key, ok := in.keypad.FirstPressed(); ok {
		in.registers.V[ins.X] = key
		return nil
	}

	in.mode = AwaitingKey
	in.waitReg = ins.X
	in.next = in.registers.PC
	return nil
}

func (in *Interpreter) ldDTVx(ins Instruction) error {
	in.timers.Delay = in.registers.V[ins.X]
	return nil
}

func (in *Interpreter) ldSTVx(ins Instruction) error {
	in.timers.Sound = in.registers.V[ins.X]
	in.updateAudio()
	return nil
}

func (in *Interpreter) addI(ins Instruction) error {
	sum := uint32(in.registers.I) + uint32(in.registers.V[ins.X])
	in.registers.I = uint16(sum)
	if in.quirks.IndexOverflowFlag {
		in.setFlag(sum > memory.Size-1)
	}
	return nil
}

func (in *Interpreter) ldF(ins Instruction) error {
	in.registers.I = memory.FontAddress(in.registers.V[ins.X])
	return nil
}

// ldB stores the binary coded decimal digits of VX at I, I+1 and I+2.
func (in *Interpreter) ldB(ins Instruction) error {
	value := in.registers.V[ins.X]
	digits := []byte{value / 100, value / 10 % 10, value % 10}
	return in.memory.WriteRange(in.registers.I, digits)
}

func (in *Interpreter) storeRegs(ins Instruction) error {
	regs, err := in.registers.Span(int(ins.X))
	if err != nil {
		return err
	}
	if err := in.memory.WriteRange(in.registers.I, regs); err != nil {
		return err
	}
	in.advanceIndex(len(regs))
	return nil
}

func (in *Interpreter) loadRegs(ins Instruction) error {
	regs, err := in.registers.Span(int(ins.X))
	if err != nil {
		return err
	}
	data, err := in.memory.ReadRange(in.registers.I, len(regs))
	if err != nil {
		return err
	}
	copy(regs, data)
	in.advanceIndex(len(regs))
	return nil
}

func (in *Interpreter) advanceIndex(count int) {
	if in.quirks.LoadStoreIncrementsI {
		in.registers.I += uint16(count)
	}
}
