package uci

import (
	"bufio"
	"chessbot/src/engine"
	"chessbot/src/logx"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

type UCIExecutor struct {
	// init
	path string
	args []string

	// process
	cmd  *exec.Cmd
	in   io.WriteCloser
	out  io.ReadCloser
	name string

	// read stdout; ctx is cancelled when the process output ends
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	// runtime
	mu         sync.RWMutex
	running    bool
	info       engine.AnalysisInfo
	lines      chan string
	bestMoveCh chan struct{}
	logx       logx.Logger
}

// to open a process, need to call Init()
func NewUCIExec(logx logx.Logger, enginePath string, engineArgs ...string) *UCIExecutor {
	return &UCIExecutor{
		path: enginePath, args: engineArgs, logx: logx,
		bestMoveCh: make(chan struct{}, 1), // buffered: send won't block if nobody WaitDone yet
	}
}

// Init starts the process and runs the uci/isready handshake.
func (e *UCIExecutor) Init() error {
	if e.path == "" {
		return errors.New("engine path must not be empty")
	}
	if e.cmd != nil {
		return errors.New("engine already initialized")
	}

	cmd := exec.Command(e.path, e.args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("connect to stdin of %s: %w", e.path, err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("connect to stdout of %s: %w", e.path, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start engine %s: %w", e.path, err)
	}

	e.cmd = cmd
	e.in = in
	e.out = out
	e.lines = make(chan string, 256)

	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.wg.Add(1)
	go e.stdoutLoop()
	e.logx.Debugf("engine process started, pid %d", cmd.Process.Pid)

	if err := e.checkUCI(); err != nil {
		e.Close()
		return err
	}
	if err := e.checkReady(); err != nil {
		e.Close()
		return err
	}
	e.logx.Infof("open engine: %s", e.Name())
	return nil
}

// Name is the "id name" reported during the handshake, or the path.
func (e *UCIExecutor) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.name == "" {
		return e.path
	}
	return e.name
}

// command executable
func (e *UCIExecutor) Exec(cmd string) error {
	if e.in == nil {
		return engine.ErrNotRunning
	}
	e.logx.Debugf("GUI: %s", cmd)
	_, err := io.WriteString(e.in, cmd+"\n")
	return err
}

func (e *UCIExecutor) SetPositionFEN(fen string) error {
	if e.cmd == nil {
		return engine.ErrNotRunning
	}
	if err := e.Exec("ucinewgame"); err != nil {
		return err
	}
	if err := e.Exec("position fen " + fen); err != nil {
		return err
	}
	return e.checkReady()
}

// actual info
func (e *UCIExecutor) BestNow() engine.AnalysisInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	info := e.info
	info.PV = append([]string(nil), e.info.PV...)
	return info
}

func (e *UCIExecutor) StartAnalysis(prm engine.SearchParams) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd == nil {
		return engine.ErrNotRunning
	}
	if e.running {
		return engine.ErrBusy
	}

	var b strings.Builder
	b.WriteString("go")
	if prm.Infinite {
		b.WriteString(" infinite")
	} else {
		if prm.MaxDepth > 0 {
			b.WriteString(" depth " + strconv.Itoa(prm.MaxDepth))
		}
		if prm.MaxTimeMs > 0 {
			b.WriteString(" movetime " + strconv.FormatInt(prm.MaxTimeMs, 10))
		}
	}

	// a bestmove from an abandoned search must not satisfy this one
	select {
	case <-e.bestMoveCh:
	default:
	}
	e.info = engine.AnalysisInfo{}
	e.running = true

	cmd := b.String()
	e.logx.Debugf("start analyze: %s", cmd)
	if err := e.Exec(cmd); err != nil {
		e.running = false
		return err
	}
	return nil
}

// calling if analysis is infinite or overdue
func (e *UCIExecutor) StopAnalysis() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd == nil {
		return engine.ErrNotRunning
	}
	if !e.running {
		return nil
	}
	e.logx.Debug("stop analyze")
	return e.Exec("stop")
}

// WaitDone blocks until "bestmove" arrives, the timeout passes or the
// process dies.
func (e *UCIExecutor) WaitDone(timeout time.Duration) error {
	e.mu.RLock()
	running := e.running
	ctx := e.ctx
	e.mu.RUnlock()

	if ctx == nil {
		return engine.ErrNotRunning
	}
	if !running {
		select {
		case <-ctx.Done():
			return engine.ErrTerminated
		default:
			return nil
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-e.bestMoveCh:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w after %v", engine.ErrTimeout, timeout)
	case <-ctx.Done():
		return engine.ErrTerminated
	}
}

// Close asks the engine to quit and kills it after a grace period.
func (e *UCIExecutor) Close() {
	if e.cmd == nil {
		return
	}
	e.once.Do(func() {
		_ = e.Exec("quit")
		_ = e.in.Close()

		done := make(chan struct{})
		go func() {
			e.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(engine.CloseGracePeriod):
			e.logx.Warn("engine did not quit, killing it")
			if e.cmd.Process != nil {
				_ = e.cmd.Process.Kill()
			}
			<-done
		}

		e.cancel()
		if err := e.cmd.Wait(); err != nil {
			e.logx.Debugf("engine exit: %v", err)
		}
		e.logx.Info("uci-process terminated")
	})
}

func (e *UCIExecutor) checkUCI() error {
	if err := e.Exec("uci"); err != nil {
		return err
	}
	return e.waitCompare("uciok", engine.UCIHandshakeTimeout, func(line string) {
		if name, ok := strings.CutPrefix(line, "id name "); ok {
			e.mu.Lock()
			e.name = name
			e.mu.Unlock()
		}
	})
}

func (e *UCIExecutor) checkReady() error {
	if err := e.Exec("isready"); err != nil {
		return err
	}
	return e.waitCompare("readyok", engine.UCIHandshakeTimeout, nil)
}

// waitCompare consumes lines until one starts with str. Other lines are
// passed to skip when it is set.
func (e *UCIExecutor) waitCompare(str string, timeout time.Duration, skip func(string)) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case line := <-e.lines:
			if strings.HasPrefix(line, str) {
				return nil
			}
			if skip != nil {
				skip(line)
			}
		case <-timer.C:
			return fmt.Errorf("%w waiting for %s", engine.ErrTimeout, str)
		case <-e.ctx.Done():
			return fmt.Errorf("%w waiting for %s", engine.ErrTerminated, str)
		}
	}
}

func (e *UCIExecutor) stdoutLoop() {
	defer e.wg.Done()
	// no more output means the engine is gone
	defer e.cancel()

	scr := bufio.NewScanner(e.out)
	for scr.Scan() {
		line := strings.TrimSpace(scr.Text())
		if line == "" {
			continue
		}
		e.logx.Debugf("ENGINE: %s", line)

		switch {
		case strings.HasPrefix(line, "info "):
			e.saveInfo(line)
		case strings.HasPrefix(line, "bestmove"):
			e.saveBest(line)
		default:
			select {
			case e.lines <- line:
			default:
				e.logx.Debug("drop engine line (buffer full)")
			}
		}
	}
	if err := scr.Err(); err != nil {
		e.logx.Debugf("engine stdout: %v", err)
	}
}

// saveInfo merges one "info" line into the current analysis. Lines without a
// score or pv (currmove, string) only update the counters they carry.
func (e *UCIExecutor) saveInfo(line string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	parseInfo(&e.info, line)
}

func parseInfo(info *engine.AnalysisInfo, line string) {
	fld := strings.Fields(line)
	n := len(fld)
	for i := 1; i < n; i++ {
		switch fld[i] {
		case "depth":
			if i+1 < n {
				if v, err := strconv.Atoi(fld[i+1]); err == nil {
					info.Depth = v
				}
				i++
			}
		case "nodes":
			if i+1 < n {
				if v, err := strconv.ParseInt(fld[i+1], 10, 64); err == nil {
					info.Nodes = v
				}
				i++
			}
		case "nps":
			if i+1 < n {
				if v, err := strconv.ParseInt(fld[i+1], 10, 64); err == nil {
					info.NPS = v
				}
				i++
			}
		case "time":
			if i+1 < n {
				if v, err := strconv.ParseInt(fld[i+1], 10, 64); err == nil {
					info.TimeMs = v
				}
				i++
			}
		case "score":
			if i+2 < n {
				v, err := strconv.Atoi(fld[i+2])
				if err == nil {
					switch fld[i+1] {
					case "cp":
						info.ScoreCP = v
						info.MateIn = 0
					case "mate":
						info.MateIn = v
					}
				}
				i += 2
			}
		case "pv":
			if i+1 < n {
				info.PV = append([]string(nil), fld[i+1:]...)
			}
			return // pv is always last
		case "string":
			return // free text up to the end of line
		default:
			// seldepth, multipv, currmove, hashfull...
		}
	}
}

func (e *UCIExecutor) saveBest(line string) {
	f := strings.Fields(line)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.running = false
	if len(f) >= 2 {
		e.info.BestMove = f[1]
	} else {
		e.info.BestMove = "(none)"
	}

	select {
	// signal to WaitDone()
	case e.bestMoveCh <- struct{}{}:
	default:
	}
}
