package feature

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"

	"github.com/flagkit/flagkit/pkg/environment"
)

// Bool returns an evaluator with a constant outcome, useful as an explicit
// kill switch or an always-on marker in code.
func Bool(v bool) Evaluator {
	return func(ctx context.Context, ec Context) (bool, error) {
		return v, nil
	}
}

// Percentage returns an evaluator that enables the flag for a stable subset
// of subjects. The subject is read from the named evaluation-context field;
// hashing is consistent (FNV-1a), so a given subject always receives the
// same outcome across calls and processes. Calls without a usable subject
// resolve to false rather than flapping.
func Percentage(key string, percent int) Evaluator {
	return func(ctx context.Context, ec Context) (bool, error) {
		if percent < 0 || percent > 100 {
			return false, errors.Join(ErrInvalidEvaluator,
				fmt.Errorf("percentage must be between 0 and 100, got %d", percent))
		}
		if percent == 0 {
			return false, nil
		}
		if percent == 100 {
			return true, nil
		}

		subject := contextString(ec, key)
		if subject == "" {
			return false, nil
		}

		hash := fnv.New32a()
		hash.Write([]byte(subject))
		return int(hash.Sum32()%100) < percent, nil
	}
}

// Subjects returns an evaluator that enables the flag only for an explicit
// set of subjects, matched exactly against the named evaluation-context
// field.
func Subjects(key string, ids ...string) Evaluator {
	return func(ctx context.Context, ec Context) (bool, error) {
		subject := contextString(ec, key)
		return subject != "" && slices.Contains(ids, subject), nil
	}
}

// Environments returns an evaluator that enables the flag in the listed
// application environments. The current environment is taken from the
// standard context, where the environment package's middleware or an
// explicit WithContext call placed it at the application boundary.
func Environments(envs ...string) Evaluator {
	return func(ctx context.Context, ec Context) (bool, error) {
		if len(envs) == 0 {
			return false, errors.Join(ErrInvalidEvaluator,
				errors.New("at least one environment required"))
		}

		env := string(environment.FromContext(ctx))
		return env != "" && slices.Contains(envs, env), nil
	}
}

// All combines evaluators so the flag is active only when every one of them
// is. Evaluation short-circuits on the first false or error.
func All(evs ...Evaluator) Evaluator {
	return func(ctx context.Context, ec Context) (bool, error) {
		if len(evs) == 0 {
			return false, errors.Join(ErrInvalidEvaluator,
				errors.New("at least one evaluator required"))
		}

		for _, ev := range evs {
			active, err := ev(ctx, ec)
			if err != nil {
				return false, err
			}
			if !active {
				return false, nil
			}
		}
		return true, nil
	}
}

// Any combines evaluators so the flag is active when at least one of them
// is. Evaluation short-circuits on the first true or error.
func Any(evs ...Evaluator) Evaluator {
	return func(ctx context.Context, ec Context) (bool, error) {
		if len(evs) == 0 {
			return false, errors.Join(ErrInvalidEvaluator,
				errors.New("at least one evaluator required"))
		}

		for _, ev := range evs {
			active, err := ev(ctx, ec)
			if err != nil {
				return false, err
			}
			if active {
				return true, nil
			}
		}
		return false, nil
	}
}

// contextString reads a string-ish value from the evaluation context.
// Non-string scalars are formatted so numeric user IDs still hash stably.
func contextString(ec Context, key string) string {
	if ec == nil {
		return ""
	}
	switch v := ec[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
