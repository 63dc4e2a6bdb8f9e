package rules

import (
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

// unarmedDie is the damage die of a bare-handed strike.
const unarmedDie = 6

// Outcome is the 4-tier attack result.
type Outcome int

const (
	CritSuccess Outcome = iota
	Success
	Failure
	CritFailure
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case CritSuccess:
		return "critical success"
	case Success:
		return "success"
	case Failure:
		return "failure"
	case CritFailure:
		return "critical failure"
	default:
		return "unknown"
	}
}

// OutcomeFor grades an attack total against a defense: ten or more over is
// critical, ten or more under is a fumble.
//
// Postcondition: Returns one of CritSuccess, Success, Failure, CritFailure.
func OutcomeFor(total, defense int) Outcome {
	switch {
	case total >= defense+10:
		return CritSuccess
	case total >= defense:
		return Success
	case total >= defense-10:
		return Failure
	default:
		return CritFailure
	}
}

// ProficiencyBonus returns the attack bonus for a skill level: 2 at level 0,
// plus one every four levels.
//
// Postcondition: Returns >= 2 for level >= 0.
func ProficiencyBonus(level int) int {
	return 2 + max(level, 0)/4
}

// AbilityMod returns floor((score - 10) / 2).
func AbilityMod(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Attack is the result of one resolved strike.
type Attack struct {
	// Roll is the raw d20.
	Roll int
	// Total is Roll plus modifiers.
	Total   int
	Outcome Outcome
	// Damage is the die plus strength, before the outcome multiplier.
	Damage int
}

// Effective returns the damage dealt: doubled on a critical, zero on a miss.
//
// Postcondition: Returns >= 0.
func (a Attack) Effective() int {
	switch a.Outcome {
	case CritSuccess:
		return a.Damage * 2
	case Success:
		return a.Damage
	default:
		return 0
	}
}

// resolveAttack rolls d20 + strength mod + melee proficiency against the
// target's defense, and the wielded weapon's damage die + positive strength.
func (r *Rules) resolveAttack(u *avatar.Avatar, target creature.Creature) Attack {
	str := AbilityMod(u.StrCur)
	roll := r.dice.Range(1, 20)
	total := roll + str + ProficiencyBonus(u.SkillLevel(avatar.SkillMelee))

	die := unarmedDie
	if u.Weapon != nil && u.Weapon.Def.Damage > 0 {
		die = u.Weapon.Def.Damage
	}
	return Attack{
		Roll:    roll,
		Total:   total,
		Outcome: OutcomeFor(total, target.Defense()),
		Damage:  r.dice.Range(1, die) + max(str, 0),
	}
}

// attackCost is the moves one melee strike takes.
func attackCost(u *avatar.Avatar) int {
	if u.Weapon == nil {
		return costAttack
	}
	return u.ItemHandlingCost(u.Weapon, false, costAttack)
}

// MeleeAttack strikes target with the wielded weapon or bare hands.
//
// Postcondition: the avatar is charged the attack cost and practices melee.
func (r *Rules) MeleeAttack(u *avatar.Avatar, target creature.Creature) {
	atk := r.resolveAttack(u, target)
	dmg := atk.Effective()
	if dmg > 0 {
		target.TakeDamage(dmg)
	}
	u.ModMoves(-attackCost(u))
	u.Practice(avatar.SkillMelee, 1)

	switch atk.Outcome {
	case CritSuccess:
		r.log.Add(message.Good, "You critically hit the %s for %d damage.", target.Name(), dmg)
	case Success:
		r.log.Add(message.Neutral, "You hit the %s for %d damage.", target.Name(), dmg)
	case Failure:
		r.log.Add(message.Neutral, "You miss the %s.", target.Name())
	case CritFailure:
		r.log.Add(message.Bad, "You stumble and miss the %s badly.", target.Name())
	}
	if dmg > 0 && target.IsDead() {
		r.log.Add(message.Good, "The %s dies!", target.Name())
	}
	r.logger.Debug("melee attack",
		zap.String("target", target.ID()),
		zap.Int("roll", atk.Roll),
		zap.Int("total", atk.Total),
		zap.Int("defense", target.Defense()),
		zap.Stringer("outcome", atk.Outcome),
		zap.Int("damage", dmg),
	)
}

// clearReach reports whether every tile strictly between from and to is
// passable.
func clearReach(m *world.Map, from, to geom.Tripoint) bool {
	line := geom.Line(from, to)
	for _, p := range line[:max(len(line)-1, 0)] {
		if !m.Passable(p) {
			return false
		}
	}
	return true
}

// ReachAttack strikes the tile p with a reach weapon.
func (r *Rules) ReachAttack(u *avatar.Avatar, m *world.Map, p geom.Tripoint) {
	line := geom.Line(u.Pos(), p)
	for _, q := range line[:max(len(line)-1, 0)] {
		if !m.Passable(q) {
			u.ModMoves(-attackCost(u))
			r.log.Add(message.Neutral, "Your swing is blocked by the %s.", m.ObstacleName(q))
			return
		}
	}
	c := r.critters.CritterAt(p)
	if c == nil || c.IsDead() {
		u.ModMoves(-attackCost(u))
		r.log.Add(message.Neutral, "You swing at the empty air.")
		return
	}
	r.MeleeAttack(u, c)
}

// TargetableCreatures returns the living creatures on the avatar's level
// within reach and with a clear line, nearest first.
func (r *Rules) TargetableCreatures(u *avatar.Avatar, m *world.Map, reach int) []creature.Creature {
	pos := u.Pos()
	var out []creature.Creature
	for _, c := range r.critters.Creatures() {
		if c.IsDead() || c.Pos().Z != pos.Z {
			continue
		}
		d := geom.Dist(pos, c.Pos())
		if d == 0 || d > reach {
			continue
		}
		if d > 1 && !clearReach(m, pos, c.Pos()) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return geom.Dist(pos, out[i].Pos()) < geom.Dist(pos, out[j].Pos())
	})
	return out
}

// MoveEffects resolves the effects that pin the avatar in place. Downed and
// stuck avatars spend the attempt getting free; a grab only holds back
// movement, never an attack.
//
// Postcondition: returns false when the attempt was used up.
func (r *Rules) MoveEffects(u *avatar.Avatar, attacking bool) bool {
	if u.HasEffect(condition.Downed) {
		if r.dice.Range(0, 40) > u.StrCur*2 {
			r.log.Add(message.Neutral, "You struggle to stand.")
		} else {
			u.RemoveEffect(condition.Downed)
			r.log.Add(message.Good, "You stand up.")
		}
		return false
	}
	if u.HasEffect(condition.Stuck) {
		if r.dice.OneIn(4) {
			u.RemoveEffect(condition.Stuck)
			r.log.Add(message.Good, "You free yourself!")
		} else {
			r.log.Add(message.Bad, "You are stuck!")
		}
		return false
	}
	if u.HasEffect(condition.Grabbed) && !attacking {
		if r.dice.Range(1, 20) > u.StrCur {
			r.log.Add(message.Bad, "You try to break out of the grab, but fail!")
			return false
		}
		u.RemoveEffect(condition.Grabbed)
		r.log.Add(message.Good, "You break out of the grab!")
	}
	return true
}

// MountWillMove reports whether the avatar's mount agrees to step to dest.
func (r *Rules) MountWillMove(u *avatar.Avatar, dest geom.Tripoint) bool {
	mt := u.Mount
	if mt == nil {
		return true
	}
	switch {
	case !mt.CheckMechPowered():
		r.log.Add(message.Bad, "Your %s refuses to move as its batteries have been drained.", mt.Name())
	case mt.HasEffect(condition.Stunned), mt.HasFlag(creature.FlagImmobile):
		r.log.Add(message.Bad, "Your %s refuses to move.", mt.Name())
	default:
		return true
	}
	r.logger.Debug("mount refused", zap.String("mount", mt.ID()), zap.Stringer("dest", dest))
	return false
}
