package script

import (
	"context"
	"fmt"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/apperr"
)

// Sink is the host automation a script is executed against: something that
// can type text, emit a tab/return, paste from the clipboard, and surface a
// reminder notification. core/script never talks to a terminal or window
// manager directly — that's hostcli's job.
type Sink interface {
	Type(ctx context.Context, s string) error
	Tab(ctx context.Context) error
	Return(ctx context.Context) error
	Paste(ctx context.Context) error
	Remind(ctx context.Context, msg string) error
	Sleep(ctx context.Context, seconds float64) error
}

// Execute runs tokens against acc/env, emitting each literal and resolved
// field reference to sink via Type, and invoking the matching Sink method
// for each control token. A Pacer governs per-character typing delay set
// by "rate N" tokens; pass nil to type without pacing.
func Execute(ctx context.Context, tokens []Token, scriptCtx Context, acc *account.Account, env account.Env, sink Sink, pacer *Pacer) error {
	for _, tok := range tokens {
		if err := checkContext(tok, scriptCtx); err != nil {
			return err
		}
		switch tok.Kind {
		case KindLiteral:
			if err := typePaced(ctx, sink, pacer, tok.Text); err != nil {
				return err
			}
		case KindFieldRef:
			val, err := account.GetValue(env, acc, tok.Text)
			if err != nil {
				return err
			}
			if err := typePaced(ctx, sink, pacer, fmt.Sprintf("%v", val)); err != nil {
				return err
			}
		case KindTab:
			if err := sink.Tab(ctx); err != nil {
				return err
			}
		case KindReturn:
			if err := sink.Return(ctx); err != nil {
				return err
			}
		case KindPaste:
			if err := sink.Paste(ctx); err != nil {
				return err
			}
		case KindSleep:
			if err := sink.Sleep(ctx, tok.Float); err != nil {
				return err
			}
		case KindRate:
			if pacer != nil {
				pacer.SetMillisecondsPerChar(tok.Int)
			}
		case KindRemind:
			if err := sink.Remind(ctx, tok.Text); err != nil {
				return err
			}
		default:
			return apperr.New(apperr.BadScriptToken, "", "unexecutable token kind %d", tok.Kind)
		}
	}
	return nil
}

func typePaced(ctx context.Context, sink Sink, pacer *Pacer, s string) error {
	if pacer == nil || !pacer.Active() {
		return sink.Type(ctx, s)
	}
	for _, r := range s {
		if err := pacer.Wait(ctx); err != nil {
			return err
		}
		if err := sink.Type(ctx, string(r)); err != nil {
			return err
		}
	}
	return nil
}
