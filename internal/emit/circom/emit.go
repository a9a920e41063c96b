package circom

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/zkregex-go/compiler/internal/coalesce"
	"github.com/zkregex-go/compiler/internal/nfa"
	"github.com/zkregex-go/compiler/internal/zkerr"
)

// groupView is the per-group template data: Circom signal names are built
// from the group number, and MaxBytes comes straight from Options.
type groupView struct {
	Group    int
	MaxBytes int
}

type templateData struct {
	TemplateName    string
	Pattern         string
	H, M            int
	NumStates       int
	StartStates     []int
	AcceptStates    []int
	Groups          []groupView
	HasGroups       bool
	NumGroups       int
	NumTransitions  int
	SrcList, DstList, LoList, HiList string
	SrcStartList, AcceptList         string
	GroupIDLists, GroupStartLists    []string // one joined list per group
}

const tmplText = `pragma circom 2.1.6;

include "circomlib/circuits/comparators.circom";

// SelectSubArray extracts a length-M contiguous window of in[H] starting at
// signal start, zero outside the window (spec.md §4.8 constraint 1).
template SelectSubArray(H, M) {
    signal input in[H];
    signal input start;
    signal output out[M];

    component eq[M][H];
    for (var i = 0; i < M; i++) {
        var acc = 0;
        for (var j = 0; j < H; j++) {
            eq[i][j] = IsEqual();
            eq[i][j].in[0] <== start + i;
            eq[i][j].in[1] <== j;
            acc += eq[i][j].out * in[j];
        }
        out[i] <== acc;
    }
}

// SelectAt reads in[index] for a signal index, used to pick the state
// reached at the final step of a variable-length path.
template SelectAt(N) {
    signal input in[N];
    signal input index;
    signal output out;

    component eq[N];
    var acc = 0;
    for (var i = 0; i < N; i++) {
        eq[i] = IsEqual();
        eq[i].in[0] <== index;
        eq[i].in[1] <== i;
        acc += eq[i].out * in[i];
    }
    out <== acc;
}

// {{.TemplateName}} enforces a valid path through the NFA compiled from
// pattern {{.Pattern}} ({{.NumStates}} states, {{.NumTransitions}} coalesced
// transitions).
template {{.TemplateName}}() {
    signal input inHaystack[{{.H}}];
    signal input matchStart;
    signal input matchLength;
    signal input currStates[{{.M}}];
    signal input nextStates[{{.M}}];
{{range .Groups}}    signal input captureGroup{{.Group}}Id[{{$.M}}];
    signal input captureGroup{{.Group}}Start[{{$.M}}];
{{end -}}
{{if .HasGroups}}    signal input captureGroupStartIndices[{{.NumGroups}}];
{{end}}
    signal output isValid;
{{range .Groups}}    signal output capture{{.Group}}[{{.MaxBytes}}];
{{end}}
    // 1. haystack selection
    component sel = SelectSubArray({{.H}}, {{.M}});
    sel.start <== matchStart;
    for (var i = 0; i < {{.H}}; i++) {
        sel.in[i] <== inHaystack[i];
    }
    signal haystack[{{.M}}];
    for (var i = 0; i < {{.M}}; i++) {
        haystack[i] <== sel.out[i];
    }

    // 2. start-state validity
    var startStates[{{len .StartStates}}] = [{{.SrcStartList}}];
    signal startProd[{{len .StartStates}} + 1];
    startProd[0] <== 1;
    for (var k = 0; k < {{len .StartStates}}; k++) {
        startProd[k + 1] <== startProd[k] * (currStates[0] - startStates[k]);
    }
    component startOk = IsZero();
    startOk.in <== startProd[{{len .StartStates}}];

    // 3. path-length masks
    component withinLen[{{.M}}];
    component withinLenMinus1[{{.M}}];
    signal isWithinPathLength[{{.M}}];
    signal isWithinPathLengthMinus1[{{.M}}];
    for (var i = 0; i < {{.M}}; i++) {
        withinLen[i] = LessThan(32);
        withinLen[i].in[0] <== i;
        withinLen[i].in[1] <== matchLength;
        isWithinPathLength[i] <== withinLen[i].out;

        withinLenMinus1[i] = LessThan(32);
        withinLenMinus1[i].in[0] <== i;
        withinLenMinus1[i].in[1] <== matchLength - 1;
        isWithinPathLengthMinus1[i] <== withinLenMinus1[i].out;
    }

    // 4. linkage
    for (var i = 0; i < {{.M}} - 1; i++) {
        (nextStates[i] - currStates[i + 1]) * isWithinPathLengthMinus1[i] === 0;
    }

    // 5/6. per-byte transition validity and traversal OR
    var tSrc[{{.NumTransitions}}] = [{{.SrcList}}];
    var tDst[{{.NumTransitions}}] = [{{.DstList}}];
    var tLo[{{.NumTransitions}}] = [{{.LoList}}];
    var tHi[{{.NumTransitions}}] = [{{.HiList}}];
{{range $g, $list := .GroupIDLists}}    var tGroup{{add $g 1}}Id[{{$.NumTransitions}}] = [{{$list}}];
{{end -}}
{{range $g, $list := .GroupStartLists}}    var tGroup{{add $g 1}}Start[{{$.NumTransitions}}] = [{{$list}}];
{{end}}
    component srcEq[{{.NumTransitions}}][{{.M}}];
    component dstEq[{{.NumTransitions}}][{{.M}}];
    component byteGe[{{.NumTransitions}}][{{.M}}];
    component byteLe[{{.NumTransitions}}][{{.M}}];
{{if .HasGroups}}    component captureOk[{{.NumTransitions}}][{{.M}}];
{{end}}    signal isValidTransition[{{.NumTransitions}}][{{.M}}];
    signal notValid[{{.NumTransitions}} + 1][{{.M}}];

    for (var i = 0; i < {{.M}}; i++) {
        notValid[0][i] <== 1;
    }

    for (var j = 0; j < {{.NumTransitions}}; j++) {
        for (var i = 0; i < {{.M}}; i++) {
            srcEq[j][i] = IsEqual();
            srcEq[j][i].in[0] <== currStates[i];
            srcEq[j][i].in[1] <== tSrc[j];

            dstEq[j][i] = IsEqual();
            dstEq[j][i].in[0] <== nextStates[i];
            dstEq[j][i].in[1] <== tDst[j];

            byteGe[j][i] = GreaterEqThan(8);
            byteGe[j][i].in[0] <== haystack[i];
            byteGe[j][i].in[1] <== tLo[j];

            byteLe[j][i] = LessEqThan(8);
            byteLe[j][i].in[0] <== haystack[i];
            byteLe[j][i].in[1] <== tHi[j];

            var byteOk = byteGe[j][i].out * byteLe[j][i].out;
{{if .HasGroups}}
            captureOk[j][i] = IsZero();
            captureOk[j][i].in <==
{{range $g, $grp := .Groups}}                (captureGroup{{$grp.Group}}Id[i] - tGroup{{$grp.Group}}Id[j]) * (captureGroup{{$grp.Group}}Id[i] - tGroup{{$grp.Group}}Id[j]) +
                (captureGroup{{$grp.Group}}Start[i] - tGroup{{$grp.Group}}Start[j]) * (captureGroup{{$grp.Group}}Start[i] - tGroup{{$grp.Group}}Start[j]){{if not (last $g $.Groups)}} +
{{end}}
{{end}}                ;
            isValidTransition[j][i] <== srcEq[j][i].out * dstEq[j][i].out * byteOk * captureOk[j][i].out;
{{else}}
            isValidTransition[j][i] <== srcEq[j][i].out * dstEq[j][i].out * byteOk;
{{end}}
            notValid[j + 1][i] <== notValid[j][i] * (1 - isValidTransition[j][i]);
        }
    }

    signal traversalOk[{{.M}}];
    for (var i = 0; i < {{.M}}; i++) {
        traversalOk[i] <== (1 - notValid[{{.NumTransitions}}][i]) - isWithinPathLength[i];
        traversalOk[i] === 0;
    }

    // 7. accept at end
    component finalState = SelectAt({{.M}});
    finalState.index <== matchLength - 1;
    for (var i = 0; i < {{.M}}; i++) {
        finalState.in[i] <== nextStates[i];
    }
    var acceptStates[{{len .AcceptStates}}] = [{{.AcceptList}}];
    signal acceptProd[{{len .AcceptStates}} + 1];
    acceptProd[0] <== 1;
    for (var k = 0; k < {{len .AcceptStates}}; k++) {
        acceptProd[k + 1] <== acceptProd[k] * (finalState.out - acceptStates[k]);
    }
    component acceptOk = IsZero();
    acceptOk.in <== acceptProd[{{len .AcceptStates}}];

    isValid <== startOk.out * acceptOk.out;

{{range .Groups}}
    // 8. capture extraction for group {{.Group}}
    component capture{{.Group}}Sel = SelectSubArray({{$.H}}, {{.MaxBytes}});
    capture{{.Group}}Sel.start <== captureGroupStartIndices[{{dec .Group}}];
    for (var i = 0; i < {{$.H}}; i++) {
        capture{{.Group}}Sel.in[i] <== inHaystack[i];
    }
    for (var i = 0; i < {{.MaxBytes}}; i++) {
        capture{{.Group}}[i] <== capture{{.Group}}Sel.out[i];
    }
{{end}}
}
`

var funcMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"dec": func(a int) int { return a - 1 },
	"last": func(i int, groups []groupView) bool { return i == len(groups)-1 },
}

var parsedTemplate = template.Must(template.New("circom").Funcs(funcMap).Parse(tmplText))

// Emit produces the Circom template text for f, using transitions as the
// coalesced edge set (spec.md §4.5 output) and opts for sizing and capture
// declarations.
func Emit(f *nfa.NFA, transitions []coalesce.Transition, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if err := f.Verify(); err != nil {
		return "", err
	}

	numGroups := opts.NumCaptureGroups()

	data := templateData{
		TemplateName:   opts.TemplateName,
		Pattern:        f.Pattern,
		H:              opts.H,
		M:              opts.M,
		NumStates:      f.StateCount(),
		StartStates:    f.StartStates,
		AcceptStates:   f.AcceptStates,
		HasGroups:      numGroups > 0,
		NumGroups:      numGroups,
		NumTransitions: len(transitions),
	}

	for g := 1; g <= numGroups; g++ {
		data.Groups = append(data.Groups, groupView{Group: g, MaxBytes: opts.MaxBytesPerGroup[g-1]})
	}

	srcs := make([]string, len(transitions))
	dsts := make([]string, len(transitions))
	los := make([]string, len(transitions))
	his := make([]string, len(transitions))
	groupIDCols := make([][]string, numGroups)
	groupStartCols := make([][]string, numGroups)
	for g := range groupIDCols {
		groupIDCols[g] = make([]string, len(transitions))
		groupStartCols[g] = make([]string, len(transitions))
	}

	for j, t := range transitions {
		srcs[j] = strconv.Itoa(t.Src)
		dsts[j] = strconv.Itoa(t.Dst)
		los[j] = strconv.Itoa(int(t.Lo))
		his[j] = strconv.Itoa(int(t.Hi))

		expectedID := make([]int, numGroups)
		expectedStart := make([]int, numGroups)
		for _, ev := range t.Events {
			if ev.Group < 1 || ev.Group > numGroups {
				return "", zkerr.New(zkerr.InvalidCapture, "transition references group %d outside declared range 1..%d", ev.Group, numGroups)
			}
			expectedID[ev.Group-1] = ev.Group
			if ev.IsStart {
				expectedStart[ev.Group-1] = 1
			}
		}
		for g := 0; g < numGroups; g++ {
			groupIDCols[g][j] = strconv.Itoa(expectedID[g])
			groupStartCols[g][j] = strconv.Itoa(expectedStart[g])
		}
	}

	data.SrcList = strings.Join(srcs, ", ")
	data.DstList = strings.Join(dsts, ", ")
	data.LoList = strings.Join(los, ", ")
	data.HiList = strings.Join(his, ", ")
	for g := 0; g < numGroups; g++ {
		data.GroupIDLists = append(data.GroupIDLists, strings.Join(groupIDCols[g], ", "))
		data.GroupStartLists = append(data.GroupStartLists, strings.Join(groupStartCols[g], ", "))
	}

	data.SrcStartList = joinInts(f.StartStates)
	data.AcceptList = joinInts(f.AcceptStates)

	var buf strings.Builder
	if err := parsedTemplate.Execute(&buf, data); err != nil {
		return "", zkerr.Wrap(zkerr.TemplateError, err, "circom: executing template")
	}
	return buf.String(), nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
