// bingocalc generates station layouts from a plan file and evaluates
// the beam-pattern metrics of each against an element pattern CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"

	bingo "github.com/Geovannisz/LayoutGeneratorBINGO-sub000"
	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/efield"
	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/layout"
)

var settings = bingo.NewSettings()

var (
	indir      string
	outdir     string
	planFname  string
	efieldF    string
	layoutName string
)

func init() {
	flag.StringVar(&indir, "indir", ".", "directory with config.yml")
	flag.StringVar(&outdir, "outdir", ".", "directory for layout files")
	flag.StringVar(&planFname, "plan", "plan.yml", "layout plan file")
	flag.StringVar(&efieldF, "efield", "efield.csv", "element pattern CSV (.csv or .csv.gz)")
	flag.StringVar(&layoutName, "layout", "", "evaluate only the named plan entry")
}

func main() {
	flag.Parse()
	ReadAppConfig()

	plan, err := layout.LoadPlan(planFname)
	if err != nil {
		log.Fatal("LoadPlan ", err)
	}

	ds, err := efield.LoadCSV(efieldF, settings.FreqGHz)
	if err != nil {
		log.Fatal("LoadCSV ", err)
	}
	log.Infof("Loaded %d element pattern samples from %s", ds.Len(), efieldF)

	tile := layout.Tile64()
	analyzer := bingo.NewAnalyzer(settings)
	go reportProgress(analyzer)

	evaluated := 0
	for _, entry := range plan.Layouts {
		if layoutName != "" && entry.Name != layoutName {
			continue
		}
		if err := evaluate(analyzer, entry, tile, ds); err != nil {
			log.WithField("layout", entry.Name).Error(err)
			continue
		}
		evaluated++
	}
	if evaluated == 0 {
		log.Fatal("no plan entry evaluated")
	}
}

func evaluate(analyzer *bingo.Analyzer, entry layout.PlanEntry, tile vlib.VectorC, ds *efield.Dataset) error {
	centers, err := entry.Generate()
	if err != nil {
		return err
	}
	positions := layout.ExpandTiles(centers, tile)
	log.Infof("%s: %d tiles, %d antennas", entry.Name, len(centers), len(positions))

	fname := filepath.Join(outdir, entry.Name+"_layout.csv")
	if err := layout.SaveLayoutCSV(fname, positions); err != nil {
		return err
	}

	start := time.Now()
	result := <-analyzer.SubmitAnalysis(context.Background(), bingo.AnalysisRequest{
		Positions: positions,
		Dataset:   ds,
	})
	if result.Err != nil {
		return result.Err
	}
	printReport(entry.Name, result.Metrics, time.Since(start))
	return nil
}

func reportProgress(analyzer *bingo.Analyzer) {
	for p := range analyzer.Progress() {
		log.Debugf("request %d: synthesized %d/%d samples", p.RequestID, p.Done, p.Total)
	}
}

func printReport(name string, m bingo.Metrics, elapsed time.Duration) {
	color.Cyan("== %s ==", name)
	fmt.Printf("Total volume     : %.6g\n", m.TotalVolume)
	if m.SLL.Degenerate {
		color.Yellow("SLL              : degenerate pattern")
	} else {
		fmt.Printf("Power in %.0f deg  : %.2f %%\n", m.SLL.ConeDeg, m.SLL.Percentage)
	}
	if m.EE.Degenerate {
		color.Yellow("Encircled energy : degenerate pattern")
	} else {
		fmt.Printf("EE(%.0f%%) theta    : %.3f deg\n", settings.EEPercentage, m.EE.ThetaDeg)
	}
	if m.ThetaPicoOK {
		fmt.Printf("Main lobe width  : %.3f deg\n", m.ThetaPicoDeg)
	} else {
		color.Yellow("Main lobe width  : undetermined")
	}
	fmt.Printf("Elapsed          : %v\n", elapsed)
}
