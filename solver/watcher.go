package solver

// A watcher is a binary clause seen from one of its literals: if the watched
// literal becomes false, other must be true.
type watcher struct {
	other  Lit
	clause *Clause
}

// watcherList holds the clause database and the watch lists indexed by
// literal. Binary clauses get a dedicated fast path.
type watcherList struct {
	nbMax    int         // Current cap on the number of learned clauses.
	wlistBin [][]watcher // For each literal, binary clauses watching its negation.
	wlist    [][]*Clause // For each literal, long clauses watching its negation.
	clauses  []*Clause   // Irredundant clauses.
	learned  []*Clause   // Learned clauses.
}

func (s *Solver) initWatcherList(clauses []*Clause) {
	nbLits := s.nbVars * 2
	s.wl = watcherList{
		nbMax:    initNbMaxClauses,
		wlistBin: make([][]watcher, nbLits),
		wlist:    make([][]*Clause, nbLits),
		clauses:  make([]*Clause, 0, len(clauses)),
	}
	for _, c := range clauses {
		s.appendClause(c)
	}
}

// watchClause makes c's first two literals watched.
func (s *Solver) watchClause(c *Clause) {
	if c.Len() == 2 {
		first := c.First()
		second := c.Second()
		s.wl.wlistBin[first.Negation()] = append(s.wl.wlistBin[first.Negation()], watcher{other: second, clause: c})
		s.wl.wlistBin[second.Negation()] = append(s.wl.wlistBin[second.Negation()], watcher{other: first, clause: c})
		return
	}
	neg0 := c.First().Negation()
	neg1 := c.Second().Negation()
	s.wl.wlist[neg0] = append(s.wl.wlist[neg0], c)
	s.wl.wlist[neg1] = append(s.wl.wlist[neg1], c)
}

// unwatchClause removes c from the watch lists of its first two literals.
func (s *Solver) unwatchClause(c *Clause) {
	if c.Len() == 2 {
		for _, l := range []Lit{c.First(), c.Second()} {
			neg := l.Negation()
			ws := s.wl.wlistBin[neg]
			for i, w := range ws {
				if w.clause == c {
					last := len(ws) - 1
					ws[i] = ws[last]
					s.wl.wlistBin[neg] = ws[:last]
					break
				}
			}
		}
		return
	}
	for _, l := range []Lit{c.First(), c.Second()} {
		neg := l.Negation()
		ws := s.wl.wlist[neg]
		for i, w := range ws {
			if w == c {
				last := len(ws) - 1
				ws[i] = ws[last]
				s.wl.wlist[neg] = ws[:last]
				break
			}
		}
	}
}

// appendClause adds an irredundant clause to the database and watches it.
func (s *Solver) appendClause(c *Clause) {
	c.id = s.nextClauseID()
	s.wl.clauses = append(s.wl.clauses, c)
	s.watchClause(c)
}

// addLearned adds a redundant clause to the database and watches it.
func (s *Solver) addLearned(c *Clause) {
	c.id = s.nextClauseID()
	s.wl.learned = append(s.wl.learned, c)
	s.watchClause(c)
	s.clauseBumpActivity(c)
	s.Stats.NbLearned++
	if c.Len() == 2 {
		s.Stats.NbBinaryLearned++
	}
}

func (s *Solver) nextClauseID() uint64 {
	s.clauseID++
	return s.clauseID
}

// collectGarbage removes clauses marked garbage from the database and from
// every watch list they still sit in.
func (s *Solver) collectGarbage() {
	s.wl.clauses = purgeGarbage(s.wl.clauses)
	s.wl.learned = purgeGarbage(s.wl.learned)
	for lit := range s.wl.wlistBin {
		ws := s.wl.wlistBin[lit]
		j := 0
		for _, w := range ws {
			if !w.clause.Garbage() {
				ws[j] = w
				j++
			}
		}
		s.wl.wlistBin[lit] = ws[:j]
	}
	for lit := range s.wl.wlist {
		ws := s.wl.wlist[lit]
		j := 0
		for _, c := range ws {
			if !c.Garbage() {
				ws[j] = c
				j++
			}
		}
		s.wl.wlist[lit] = ws[:j]
	}
}

func purgeGarbage(clauses []*Clause) []*Clause {
	j := 0
	for _, c := range clauses {
		if !c.Garbage() {
			clauses[j] = c
			j++
		}
	}
	return clauses[:j]
}
