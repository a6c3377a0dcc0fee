/*
 * sqlite.go, part of govasp.
 *
 * Copyright 2024 The govasp authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package export

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rmera/govasp/outcar"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	file     TEXT,
	elements TEXT NOT NULL,
	counts   TEXT NOT NULL,
	nions    INTEGER NOT NULL,
	ibrion   INTEGER,
	ispin    INTEGER
);
CREATE TABLE IF NOT EXISTS steps (
	run_id        INTEGER NOT NULL REFERENCES runs(id),
	step          INTEGER NOT NULL,
	energy        REAL NOT NULL,
	energy_sigma0 REAL NOT NULL,
	delta_e       REAL NOT NULL,
	nscf          INTEGER NOT NULL,
	max_force     REAL NOT NULL,
	average_force REAL NOT NULL,
	max_atom      INTEGER NOT NULL,
	max_element   TEXT NOT NULL,
	max_axis      TEXT NOT NULL,
	cpu_time      REAL NOT NULL,
	volume        REAL NOT NULL,
	magmom        REAL,
	PRIMARY KEY (run_id, step)
);
CREATE TABLE IF NOT EXISTS atoms (
	run_id  INTEGER NOT NULL,
	step    INTEGER NOT NULL,
	atom    INTEGER NOT NULL,
	element TEXT NOT NULL,
	x REAL NOT NULL, y REAL NOT NULL, z REAL NOT NULL,
	fx REAL NOT NULL, fy REAL NOT NULL, fz REAL NOT NULL,
	PRIMARY KEY (run_id, step, atom),
	FOREIGN KEY (run_id, step) REFERENCES steps(run_id, step)
);`

// SQLite stores the steps of O, with the positions and forces of every atom, in the SQLite
// database file path, which is created if needed. Several runs can be stored in the same
// database. It returns the id of the new run. Steps and atoms are 1-based.
func SQLite(path string, O *outcar.Outcar) (int64, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("export: failed to open database: %w", err)
	}
	defer db.Close()
	if _, err = db.Exec(schema); err != nil {
		return 0, fmt.Errorf("export: failed to create schema: %w", err)
	}
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	id, err := insertRun(tx, O)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("export: failed to commit: %w", err)
	}
	return id, nil
}

func insertRun(tx *sql.Tx, O *outcar.Outcar) (int64, error) {
	counts := make([]string, len(O.Elements.Counts))
	for i, c := range O.Elements.Counts {
		counts[i] = fmt.Sprint(c)
	}
	res, err := tx.Exec("INSERT INTO runs (file, elements, counts, nions, ibrion, ispin) VALUES (?, ?, ?, ?, ?, ?)",
		O.FileName, strings.Join(O.Elements.Symbols, " "), strings.Join(counts, " "), O.NIons(),
		nullable(O.Params.IBRION), nullable(O.Params.ISPIN))
	if err != nil {
		return 0, fmt.Errorf("export: failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	stepStmt, err := tx.Prepare(`INSERT INTO steps (run_id, step, energy, energy_sigma0, delta_e, nscf, max_force,
		average_force, max_atom, max_element, max_axis, cpu_time, volume, magmom) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stepStmt.Close()
	atomStmt, err := tx.Prepare("INSERT INTO atoms (run_id, step, atom, element, x, y, z, fx, fy, fz) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer atomStmt.Close()
	symbols := O.Elements.PerAtom()
	for i := range O.Steps {
		st := &O.Steps[i]
		_, err := stepStmt.Exec(id, i+1, st.TotalEnergy, st.TotalEnergySigma0, st.DeltaE, st.NSCF, st.MaxForce,
			st.AverageForce, st.MaxIndex+1, st.MaxSymbol, string(st.MaxAxis), st.CPUTime, st.Volume, nullable(st.Magmom))
		if err != nil {
			return 0, fmt.Errorf("export: failed to insert step %d: %w", i+1, err)
		}
		for j := 0; j < st.Positions.NVecs(); j++ {
			p, f := st.Positions.Vec(j), st.Forces.Vec(j)
			if _, err := atomStmt.Exec(id, i+1, j+1, symbols[j], p[0], p[1], p[2], f[0], f[1], f[2]); err != nil {
				return 0, fmt.Errorf("export: failed to insert atom %d of step %d: %w", j+1, i+1, err)
			}
		}
	}
	return id, nil
}

// nullable returns the value of p, or nil (NULL) if unset.
func nullable[T int | float64 | bool](p outcar.Param[T]) any {
	if v, ok := p.Get(); ok {
		return v
	}
	return nil
}
